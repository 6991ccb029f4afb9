package core

import (
	"errors"
	"testing"
)

func TestValidateBrandIssue(t *testing.T) {
	tests := []struct {
		name    string
		record  *BrandIssueRecord
		wantErr error
	}{
		{
			name:    "valid record",
			record:  &BrandIssueRecord{Name: "Acme", Issue: "2025-03-02 성수 팝업스토어 오픈", Description: "스트리트 캐주얼"},
			wantErr: nil,
		},
		{
			name:    "valid record with empty description",
			record:  &BrandIssueRecord{Name: "Acme", Issue: UnknownDate + " 신제품 출시"},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidBrandIssue,
		},
		{
			name:    "blank name",
			record:  &BrandIssueRecord{Name: "  ", Issue: "popup"},
			wantErr: ErrEmptyBrandName,
		},
		{
			name:    "missing issue",
			record:  &BrandIssueRecord{Name: "Acme"},
			wantErr: ErrEmptyIssue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrandIssue(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBrandIssue() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBrandIssue() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMedia(t *testing.T) {
	valid := MediaRecord{
		MediaID:          7,
		Name:             "강남역 디지털 사이니지",
		Location:         "Gangnam",
		Quantity:         3,
		UnitPrice:        1500000,
		PopulationTarget: "20s-30s",
	}

	tests := []struct {
		name    string
		mutate  func(m *MediaRecord)
		wantErr bool
	}{
		{name: "valid record", mutate: func(m *MediaRecord) {}, wantErr: false},
		{name: "zero media id", mutate: func(m *MediaRecord) { m.MediaID = 0 }, wantErr: true},
		{name: "missing name", mutate: func(m *MediaRecord) { m.Name = "" }, wantErr: true},
		{name: "negative quantity", mutate: func(m *MediaRecord) { m.Quantity = -1 }, wantErr: true},
		{name: "negative price", mutate: func(m *MediaRecord) { m.UnitPrice = -10 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := valid
			tt.mutate(&record)
			err := ValidateMedia(&record)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMedia) {
					t.Errorf("ValidateMedia() error = %v, want ErrInvalidMedia", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateMedia() unexpected error = %v", err)
			}
		})
	}

	if err := ValidateMedia(nil); !errors.Is(err, ErrInvalidMedia) {
		t.Errorf("ValidateMedia(nil) error = %v, want ErrInvalidMedia", err)
	}
}

func TestValidateMatch(t *testing.T) {
	valid := MatchResult{
		MediaID:         7,
		MatchReason:     "reason",
		SalesCallScript: "script",
		ProposalEmail:   "email",
	}

	if err := ValidateMatch(&valid); err != nil {
		t.Fatalf("ValidateMatch() unexpected error = %v", err)
	}

	missingScript := valid
	missingScript.SalesCallScript = " "
	if err := ValidateMatch(&missingScript); !errors.Is(err, ErrInvalidMatch) {
		t.Errorf("ValidateMatch() error = %v, want ErrInvalidMatch", err)
	}

	noMedia := valid
	noMedia.MediaID = 0
	if err := ValidateMatch(&noMedia); !errors.Is(err, ErrInvalidMatch) {
		t.Errorf("ValidateMatch() error = %v, want ErrInvalidMatch", err)
	}
}

func TestValidateSalesStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  SalesStatus
		wantErr error
	}{
		{name: "default", status: DefaultSalesStatus},
		{name: "on hold", status: SalesStatusOnHold},
		{name: "proposal sent", status: SalesStatusProposed},
		{name: "unknown", status: "bogus", wantErr: ErrInvalidSalesStatus},
		{name: "empty", status: "", wantErr: ErrInvalidSalesStatus},
		{name: "padded", status: " 보류", wantErr: ErrInvalidSalesStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSalesStatus(tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSalesStatus(%q) error = %v, want %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantErr  error
	}{
		{name: "fashion", category: "패션"},
		{name: "beauty", category: "뷰티"},
		{name: "finance", category: "금융"},
		{name: "unknown", category: "자동차", wantErr: ErrInvalidCategory},
		{name: "empty", category: "", wantErr: ErrInvalidCategory},
		{name: "english", category: "fashion", wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.category)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCategory(%q) error = %v, want %v", tt.category, err, tt.wantErr)
			}
		})
	}
}
