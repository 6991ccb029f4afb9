package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/xuri/excelize/v2"
)

// Dataset column headers.
const (
	colMediaID              = "media_id"
	colMediaName            = "media_name"
	colLocation             = "location"
	colSpecification        = "specification"
	colSlotCount            = "slot_count"
	colMediaType            = "media_type"
	colOperatingHours       = "operating_hours"
	colGuaranteedExposure   = "guaranteed_exposure"
	colDurationSeconds      = "duration_seconds"
	colQuantity             = "quantity"
	colUnitPrice            = "unit_price"
	colImageDayURL          = "image_day_url"
	colImageNightURL        = "image_night_url"
	colImageMapURL          = "image_map_url"
	colPopulationTarget     = "population_target"
	colMediaCharacteristics = "media_characteristics"
	colCaseExamples         = "case_examples"
)

// requiredColumns must be present in every dataset. The other columns
// are optional and read as empty.
var requiredColumns = []string{
	colMediaID,
	colMediaName,
	colLocation,
	colPopulationTarget,
	colMediaCharacteristics,
	colCaseExamples,
}

// LoadCSV reads media records from a CSV stream with a header row.
func LoadCSV(r io.Reader) ([]core.MediaRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRows(rows)
}

// LoadFile reads a dataset by extension: .xlsx through LoadXLSX, anything
// else as CSV.
func LoadFile(path, sheet string) ([]core.MediaRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, sheet)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadXLSX reads media records from a worksheet. An empty sheet name
// selects the first sheet.
func LoadXLSX(path, sheet string) ([]core.MediaRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]core.MediaRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset has no header row", ErrMissingColumn)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimPrefix(name, "\ufeff")
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	records := make([]core.MediaRecord, 0, len(rows)-1)
	seen := make(map[int64]int, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		if blankRow(row) {
			continue
		}

		rec, err := parseRecord(header, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if err := core.ValidateMedia(&rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if first, dup := seen[rec.MediaID]; dup {
			return nil, fmt.Errorf("%w: %d on rows %d and %d", ErrDuplicateMediaID, rec.MediaID, first, line)
		}
		seen[rec.MediaID] = line
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(header map[string]int, row []string) (core.MediaRecord, error) {
	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec core.MediaRecord
	var err error
	if rec.MediaID, err = parseInt(colMediaID, cell(colMediaID)); err != nil {
		return rec, err
	}
	var n int64
	if n, err = parseInt(colSlotCount, cell(colSlotCount)); err != nil {
		return rec, err
	}
	rec.SlotCount = int(n)
	if rec.GuaranteedExposure, err = parseInt(colGuaranteedExposure, cell(colGuaranteedExposure)); err != nil {
		return rec, err
	}
	if n, err = parseInt(colDurationSeconds, cell(colDurationSeconds)); err != nil {
		return rec, err
	}
	rec.DurationSeconds = int(n)
	if n, err = parseInt(colQuantity, cell(colQuantity)); err != nil {
		return rec, err
	}
	rec.Quantity = int(n)
	if rec.UnitPrice, err = parseFloat(colUnitPrice, cell(colUnitPrice)); err != nil {
		return rec, err
	}

	rec.Name = cell(colMediaName)
	rec.Location = cell(colLocation)
	rec.Specification = cell(colSpecification)
	rec.MediaType = cell(colMediaType)
	rec.OperatingHours = cell(colOperatingHours)
	rec.ImageDayURL = cell(colImageDayURL)
	rec.ImageNightURL = cell(colImageNightURL)
	rec.ImageMapURL = cell(colImageMapURL)
	rec.PopulationTarget = cell(colPopulationTarget)
	rec.MediaCharacteristics = cell(colMediaCharacteristics)
	rec.CaseExamples = cell(colCaseExamples)
	return rec, nil
}

// parseInt accepts integers and integral floats such as "7.0". Blank is zero.
func parseInt(col, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s: %q is not an integer", col, s)
	}
	return int64(f), nil
}

func parseFloat(col, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", col, s)
	}
	return f, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
