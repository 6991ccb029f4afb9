package sqlstore

import (
	"time"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// brandRow maps the brands table.
type brandRow struct {
	BrandID            int64     `gorm:"column:brand_id;primaryKey;autoIncrement:false"`
	SubsidiaryID       string    `gorm:"column:subsidiary_id;size:36;not null"`
	BrandName          string    `gorm:"column:brand_name;size:255;not null;uniqueIndex:uk_brands_brand_name"`
	MainPhoneNumber    string    `gorm:"column:main_phone_number;size:50"`
	ManagerEmail       string    `gorm:"column:manager_email;size:255"`
	ManagerPhoneNumber string    `gorm:"column:manager_phone_number;size:50"`
	SalesStatus        string    `gorm:"column:sales_status;size:20;not null"`
	SalesStatusNote    string    `gorm:"column:sales_status_note;type:text"`
	Category           string    `gorm:"column:category;size:50"`
	CoreProductSummary string    `gorm:"column:core_product_summary;type:text"`
	RecentBrandIssues  string    `gorm:"column:recent_brand_issues;type:text"`
	LastUpdatedAt      time.Time `gorm:"column:last_updated_at;not null"`
}

func (brandRow) TableName() string { return "brands" }

func (r *brandRow) toBrand() *core.Brand {
	return &core.Brand{
		ID:                 core.ID(r.BrandID),
		SubsidiaryID:       r.SubsidiaryID,
		Name:               r.BrandName,
		Category:           r.Category,
		CoreProductSummary: r.CoreProductSummary,
		RecentIssues:       r.RecentBrandIssues,
		SalesStatus:        core.SalesStatus(r.SalesStatus),
		SalesStatusNote:    r.SalesStatusNote,
		LastUpdatedAt:      r.LastUpdatedAt,
	}
}

// matchRow maps the brand_media_matches table. The proposal email is
// stored across three text columns.
type matchRow struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	BrandID            int64     `gorm:"column:brand_id;not null;uniqueIndex:uk_brand_media_pair,priority:1"`
	MediaID            int64     `gorm:"column:media_id;not null;uniqueIndex:uk_brand_media_pair,priority:2"`
	MatchReason        string    `gorm:"column:match_reason;type:text"`
	SalesCallScript    string    `gorm:"column:sales_call_script;type:text"`
	ProposalEmailPart1 string    `gorm:"column:proposal_email_part_1;type:text"`
	ProposalEmailPart2 string    `gorm:"column:proposal_email_part_2;type:text"`
	ProposalEmailPart3 string    `gorm:"column:proposal_email_part_3;type:text"`
	GeneratedAt        time.Time `gorm:"column:generated_at;not null"`
	UsedInSales        bool      `gorm:"column:used_in_sales;not null;default:false"`
	LastUpdatedAt      time.Time `gorm:"column:last_updated_at;not null"`
}

func (matchRow) TableName() string { return "brand_media_matches" }

func (r *matchRow) toMatch() core.MatchResult {
	return core.MatchResult{
		MediaID:         r.MediaID,
		MatchReason:     r.MatchReason,
		SalesCallScript: r.SalesCallScript,
		ProposalEmail:   r.ProposalEmailPart1 + r.ProposalEmailPart2 + r.ProposalEmailPart3,
		GeneratedAt:     r.GeneratedAt,
		LastUpdatedAt:   r.LastUpdatedAt,
		UsedInSales:     r.UsedInSales,
	}
}
