package postgres

import (
	"context"
	"fmt"
	"time"

	"omnimarket/internal/market"

	"gorm.io/gorm/clause"
)

func (p *PostgresClient) InsertTick(ctx context.Context, record *TickRecord) error {
	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"},
			{Name: "source"},
			{Name: "observed_at"},
		},
		DoNothing: true,
	}).Create(record)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf(
			"duplicate tick skipped: symbol=%s source=%s observed_at=%s",
			record.Symbol,
			record.Source,
			record.ObservedAt.Format(time.RFC3339),
		)
	}

	return nil
}

// LatestTick returns the most recently observed record for a symbol.
func (p *PostgresClient) LatestTick(ctx context.Context, symbol string) (*TickRecord, error) {
	var record TickRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("observed_at DESC").
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// TicksSince returns all records for a symbol observed at or after the cutoff.
func (p *PostgresClient) TicksSince(ctx context.Context, symbol string, since time.Time) ([]TickRecord, error) {
	var records []TickRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ? AND observed_at >= ?", symbol, since).
		Order("observed_at ASC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *PostgresClient) DeleteOldTicks(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("observed_at < ?", before).
		Delete(&TickRecord{}).Error
}

// ToTickRecord converts a normalized tick into a TickRecord for DB insertion.
func ToTickRecord(tick market.Tick) *TickRecord {
	return &TickRecord{
		Symbol:        tick.Symbol,
		Source:        tick.Source,
		ObservedAt:    tick.LastUpdate,
		AssetClass:    string(tick.AssetClass),
		Price:         tick.Price,
		Change:        tick.Change,
		ChangePercent: tick.ChangePercent,
		Volume:        tick.Volume,
	}
}
