package postgres

import "time"

// TickRecord is one normalized market observation archived in the database.
type TickRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Symbol     string    `gorm:"type:text;not null;index:idx_tick_symbol;index:idx_symbol_source_observed,unique"`
	Source     string    `gorm:"type:text;not null;index:idx_symbol_source_observed,unique"`
	ObservedAt time.Time `gorm:"not null;index:idx_symbol_source_observed,unique"`

	AssetClass string `gorm:"type:varchar(16);not null"`

	Price         float64 `gorm:"type:numeric;not null"`
	Change        float64 `gorm:"type:numeric;not null"`
	ChangePercent float64 `gorm:"type:numeric;not null"`
	Volume        float64 `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (TickRecord) TableName() string {
	return "tick_record"
}
