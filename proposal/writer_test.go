package proposal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/happy6team/ooh-marketing-sales/core"
)

func TestFileName(t *testing.T) {
	at := time.Date(2025, 5, 2, 14, 3, 9, 0, time.UTC)
	assert.Equal(t, "무신사_스탠다드_proposal_20250502_140309.xlsx", FileName("무신사 스탠다드", at))
	assert.Equal(t, "A_B_proposal_20250502_140309.xlsx", FileName("A/B", at))
	assert.Equal(t, "brand_proposal_20250502_140309.xlsx", FileName("  ", at))
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	at := time.Date(2025, 5, 2, 14, 3, 9, 0, time.UTC)
	w := NewWriter(dir, WithClock(func() time.Time { return at }))

	brand := core.BrandIssueRecord{Name: "Acme", Issue: "날짜 미상: 팝업", Description: "스트리트"}
	match := &core.MatchResult{
		MediaID:         7,
		MediaName:       "강남역 미디어폴",
		MediaLocation:   "강남역",
		MatchReason:     "강남역에 위치하며",
		SalesCallScript: "안녕하세요.",
		ProposalEmail:   "안녕하세요.\n올이즈굿 김하늘 드림",
		GeneratedAt:     at,
	}

	path, err := w.Write(brand, match)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Acme_proposal_20250502_140309.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, emailSheet}, f.GetSheetList())

	value, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Acme", value)

	value, err = f.GetCellValue(summarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "강남역 미디어폴", value)

	rows, err := f.GetRows(emailSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "올이즈굿 김하늘 드림", rows[1][0])
}

func TestWrite_NilMatch(t *testing.T) {
	_, err := NewWriter(t.TempDir()).Write(core.BrandIssueRecord{Name: "Acme"}, nil)
	assert.ErrorIs(t, err, ErrMatchRequired)
}
