package proposal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/happy6team/ooh-marketing-sales/core"
)

const (
	summarySheet = "제안 요약"
	emailSheet   = "제안 메일"

	timestampLayout = "20060102_150405"
)

// ErrMatchRequired is returned when Write is given no match.
var ErrMatchRequired = errors.New("match required")

// Writer saves proposal workbooks into a directory.
type Writer struct {
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "proposal-writer")
	}
}

// WithClock sets the time source used in file names.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter creates a writer for dir. The directory is created on first write.
func NewWriter(dir string, opts ...Option) *Writer {
	if dir == "" {
		dir = "."
	}
	w := &Writer{
		dir:    dir,
		now:    time.Now,
		logger: slog.Default().With("component", "proposal-writer"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FileName returns the workbook name for a brand at t.
func FileName(brand string, t time.Time) string {
	return fmt.Sprintf("%s_proposal_%s.xlsx", safeName(brand), t.Format(timestampLayout))
}

// Write saves a workbook for the brand's match and returns its path.
func (w *Writer) Write(brand core.BrandIssueRecord, match *core.MatchResult) (string, error) {
	if match == nil {
		return "", ErrMatchRequired
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), summarySheet); err != nil {
		return "", fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummary(xl, brand, match); err != nil {
		return "", err
	}
	if err := writeEmail(xl, match.ProposalEmail); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, FileName(brand.Name, w.now()))
	if err := xl.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save proposal: %w", err)
	}
	w.logger.Info("proposal written", "brand", brand.Name, "path", path)
	return path, nil
}

func writeSummary(xl *excelize.File, brand core.BrandIssueRecord, match *core.MatchResult) error {
	rows := [][]string{
		{"항목", "내용"},
		{"브랜드", brand.Name},
		{"최근 이슈", brand.Issue},
		{"브랜드 설명", brand.Description},
		{"추천 매체", match.MediaName},
		{"매체 위치", match.MediaLocation},
		{"매체 유형", match.MediaType},
		{"매칭 사유", match.MatchReason},
		{"영업 스크립트", match.SalesCallScript},
		{"제안 메일", match.ProposalEmail},
		{"생성 시각", match.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	wrap, err := xl.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(2, len(rows))
	if err := xl.SetCellStyle(summarySheet, "A1", last, wrap); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	if err := xl.SetColWidth(summarySheet, "A", "A", 16); err != nil {
		return err
	}
	return xl.SetColWidth(summarySheet, "B", "B", 100)
}

// writeEmail puts one email line per row so the text copies cleanly.
func writeEmail(xl *excelize.File, email string) error {
	if _, err := xl.NewSheet(emailSheet); err != nil {
		return fmt.Errorf("failed to create email sheet: %w", err)
	}
	for i, line := range strings.Split(email, "\n") {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := xl.SetCellStr(emailSheet, cell, line); err != nil {
			return fmt.Errorf("failed to write email line %d: %w", i+1, err)
		}
	}
	return xl.SetColWidth(emailSheet, "A", "A", 100)
}

// safeName replaces characters that are unsafe in file names.
func safeName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	name = replacer.Replace(strings.TrimSpace(name))
	if name == "" {
		return "brand"
	}
	return name
}
