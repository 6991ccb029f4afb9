package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const fullHeader = "media_id,media_name,location,specification,slot_count,media_type,operating_hours," +
	"guaranteed_exposure,duration_seconds,quantity,unit_price,image_day_url,image_night_url,image_map_url," +
	"population_target,media_characteristics,case_examples"

func TestLoadCSV(t *testing.T) {
	data := "\ufeff" + fullHeader + "\n" +
		`7,강남역 미디어폴,서울 강남구,1920x1080,6,디지털,06:00-24:00,"1,200,000",15,2,3500000.5,day.png,night.png,map.png,20-30대,유동인구 최상위,팝업 캠페인` + "\n" +
		"\n" +
		"8,홍대 사이니지,서울 마포구,,,,,,,,,,,,대학생,젊은 상권,음반 광고\n"

	records, err := LoadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, int64(7), first.MediaID)
	assert.Equal(t, "강남역 미디어폴", first.Name)
	assert.Equal(t, 6, first.SlotCount)
	assert.Equal(t, int64(1200000), first.GuaranteedExposure)
	assert.Equal(t, 15, first.DurationSeconds)
	assert.Equal(t, 2, first.Quantity)
	assert.InDelta(t, 3500000.5, first.UnitPrice, 1e-9)
	assert.Equal(t, "map.png", first.ImageMapURL)
	assert.Equal(t, "팝업 캠페인", first.CaseExamples)

	second := records[1]
	assert.Equal(t, int64(8), second.MediaID)
	assert.Zero(t, second.SlotCount)
	assert.Zero(t, second.UnitPrice)
	assert.Equal(t, "대학생", second.PopulationTarget)
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "empty input",
			data:    "",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing required column",
			data:    "media_id,media_name\n1,a\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "duplicate media id",
			data:    fullHeader + "\n1,a,,,,,,,,,,,,,,,\n1,b,,,,,,,,,,,,,,,\n",
			wantErr: ErrDuplicateMediaID,
		},
		{
			name:    "zero media id",
			data:    fullHeader + "\n0,a,,,,,,,,,,,,,,,\n",
			wantErr: core.ErrInvalidMedia,
		},
		{
			name:    "missing media name",
			data:    fullHeader + "\n3,,,,,,,,,,,,,,,,\n",
			wantErr: core.ErrInvalidMedia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.data))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadCSV_NonNumeric(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(fullHeader + "\n1,a,,,many,,,,,,,,,,,,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot_count")
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := strings.Split(fullHeader, ",")
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []any{5, "여의도 환승센터", "서울 영등포구", "", 4, "LED", "", 50000, 10, 1, 1200.0, "", "", "", "직장인", "출퇴근 동선", "금융 광고"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := LoadXLSX(path, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].MediaID)
	assert.Equal(t, "여의도 환승센터", records[0].Name)
	assert.Equal(t, int64(50000), records[0].GuaranteedExposure)
	assert.Equal(t, "직장인", records[0].PopulationTarget)

	_, err = LoadXLSX(path, "missing")
	require.Error(t, err)
}

func TestLoadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.csv")
	data := fullHeader + "\n" + "3,여의도 환승센터,서울 영등포구,,,,,,,,,,,,직장인,출퇴근 동선,금융 광고\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	records, err := LoadFile(path, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "여의도 환승센터", records[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.Error(t, err)
}
