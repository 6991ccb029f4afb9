package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/storage"
	"gorm.io/gorm"
)

// Gateway implements storage.SalesStore on gorm.
//
// Brand and match ids are allocated as max+1 inside the transaction.
// The mutex serializes SaveMatch so two workers never allocate the same id.
type Gateway struct {
	db     *gorm.DB
	mu     sync.Mutex
	closed atomic.Bool
	logger *slog.Logger
	now    func() time.Time
}

var _ storage.SalesStore = (*Gateway)(nil)

// Option configures a Gateway.
type Option func(*Gateway) error

// WithLogger sets the logger. Nil falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger.With("component", "persistence-gateway")
		return nil
	}
}

// WithClock sets the time source for last_updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		g.now = now
		return nil
	}
}

func newGateway(db *gorm.DB, opts ...Option) (*Gateway, error) {
	g := &Gateway{
		db:     db,
		logger: slog.Default().With("component", "persistence-gateway"),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SaveMatch upserts the brand and the (brand, media) match in one transaction.
func (g *Gateway) SaveMatch(ctx context.Context, brand core.BrandIssueRecord, category string, match *core.MatchResult) (*storage.SaveResult, error) {
	if g.closed.Load() {
		return nil, storage.ErrStorageClosed
	}
	if err := core.ValidateBrandIssue(&brand); err != nil {
		return nil, err
	}
	if err := core.ValidateMatch(match); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var result storage.SaveResult
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		brandRow, brandCreated, err := g.upsertBrand(tx, brand, category)
		if err != nil {
			return err
		}
		row, matchCreated, err := g.upsertMatch(tx, brandRow, match)
		if err != nil {
			return err
		}

		stored := row.toMatch()
		stored.MediaName = match.MediaName
		stored.MediaLocation = match.MediaLocation
		stored.MediaType = match.MediaType

		result = storage.SaveResult{
			BrandID:      core.ID(brandRow.BrandID),
			MatchID:      core.ID(row.ID),
			BrandCreated: brandCreated,
			MatchCreated: matchCreated,
			Match:        stored,
		}
		return nil
	})
	if err != nil {
		g.logger.Warn("save rolled back", "brand", brand.Name, "media_id", match.MediaID, "error", err)
		return nil, fmt.Errorf("%w: brand %q: %w", storage.ErrTransactionFailed, brand.Name, err)
	}
	return &result, nil
}

// upsertBrand finds a brand by exact name or inserts it with the next id.
func (g *Gateway) upsertBrand(tx *gorm.DB, brand core.BrandIssueRecord, category string) (*brandRow, bool, error) {
	var row brandRow
	err := tx.Where("brand_name = ?", brand.Name).Take(&row).Error
	if err == nil {
		return &row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up brand: %w", err)
	}

	id, err := nextID(tx, &brandRow{}, "brand_id")
	if err != nil {
		return nil, false, err
	}
	row = brandRow{
		BrandID:            id,
		SubsidiaryID:       uuid.NewString(),
		BrandName:          brand.Name,
		SalesStatus:        string(core.DefaultSalesStatus),
		Category:           category,
		CoreProductSummary: brand.Description,
		RecentBrandIssues:  brand.Issue,
		LastUpdatedAt:      g.now(),
	}
	if err := insert(tx, &row); err != nil {
		return nil, false, fmt.Errorf("failed to insert brand %q: %w", brand.Name, err)
	}
	g.logger.Debug("brand created", "brand", brand.Name, "brand_id", id)
	return &row, true, nil
}

// upsertMatch returns the stored (brand, media) match unchanged, or inserts one.
func (g *Gateway) upsertMatch(tx *gorm.DB, brand *brandRow, match *core.MatchResult) (*matchRow, bool, error) {
	var row matchRow
	err := tx.Where("brand_id = ? AND media_id = ?", brand.BrandID, match.MediaID).Take(&row).Error
	if err == nil {
		g.logger.Info("match already exists, reusing",
			"brand", brand.BrandName, "media_id", match.MediaID, "match_id", row.ID)
		return &row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up match: %w", err)
	}

	parts, err := splitEmail(match.ProposalEmail, emailPartLimit)
	if err != nil {
		return nil, false, err
	}

	id, err := nextID(tx, &matchRow{}, "id")
	if err != nil {
		return nil, false, err
	}

	updated := match.LastUpdatedAt
	if updated.IsZero() {
		updated = g.now()
	}
	generated := match.GeneratedAt
	if generated.IsZero() {
		generated = updated
	}

	row = matchRow{
		ID:                 id,
		BrandID:            brand.BrandID,
		MediaID:            match.MediaID,
		MatchReason:        match.MatchReason,
		SalesCallScript:    match.SalesCallScript,
		ProposalEmailPart1: parts[0],
		ProposalEmailPart2: parts[1],
		ProposalEmailPart3: parts[2],
		GeneratedAt:        generated,
		UsedInSales:        false,
		LastUpdatedAt:      updated,
	}
	if err := insert(tx, &row); err != nil {
		return nil, false, fmt.Errorf("failed to insert match for media %d: %w", match.MediaID, err)
	}
	return &row, true, nil
}

// insert creates row, reporting unique constraint violations as
// storage.ErrDuplicateKey. Another process writing the same database can
// take a brand name, (brand, media) pair or id between lookup and insert.
func insert(tx *gorm.DB, row any) error {
	err := tx.Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", storage.ErrDuplicateKey, err)
	}
	return err
}

func nextID(tx *gorm.DB, model any, column string) (int64, error) {
	var maxID int64
	if err := tx.Model(model).Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", column)).Scan(&maxID).Error; err != nil {
		return 0, fmt.Errorf("failed to allocate %s: %w", column, err)
	}
	return maxID + 1, nil
}

// FindBrand looks a brand up by exact name.
func (g *Gateway) FindBrand(ctx context.Context, name string) (*core.Brand, error) {
	if g.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var row brandRow
	err := g.db.WithContext(ctx).Where("brand_name = ?", name).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: brand %q", storage.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find brand: %w", err)
	}
	return row.toBrand(), nil
}

// ListMatches returns the brand's matches ordered by id.
func (g *Gateway) ListMatches(ctx context.Context, brandID core.ID) ([]core.MatchResult, error) {
	if g.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var rows []matchRow
	err := g.db.WithContext(ctx).
		Where("brand_id = ?", int64(brandID)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	matches := make([]core.MatchResult, 0, len(rows))
	for i := range rows {
		matches = append(matches, rows[i].toMatch())
	}
	return matches, nil
}

// MarkUsed flags a match as used in a sales contact.
func (g *Gateway) MarkUsed(ctx context.Context, matchID core.ID) error {
	if g.closed.Load() {
		return storage.ErrStorageClosed
	}

	res := g.db.WithContext(ctx).
		Model(&matchRow{}).
		Where("id = ?", int64(matchID)).
		Updates(map[string]any{
			"used_in_sales":   true,
			"last_updated_at": g.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark match used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: match %d", storage.ErrNotFound, matchID)
	}
	return nil
}

// UpdateSalesStatus moves a brand to another sales stage.
func (g *Gateway) UpdateSalesStatus(ctx context.Context, name string, status core.SalesStatus, note string) error {
	if g.closed.Load() {
		return storage.ErrStorageClosed
	}
	if err := core.ValidateSalesStatus(status); err != nil {
		return err
	}

	res := g.db.WithContext(ctx).
		Model(&brandRow{}).
		Where("brand_name = ?", name).
		Updates(map[string]any{
			"sales_status":      string(status),
			"sales_status_note": note,
			"last_updated_at":   g.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update sales status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: brand %q", storage.ErrNotFound, name)
	}
	g.logger.Info("sales status updated", "brand", name, "status", status)
	return nil
}

// Close closes the underlying connection pool.
func (g *Gateway) Close() error {
	if g.closed.Swap(true) {
		return nil
	}
	return closeDB(g.db)
}
