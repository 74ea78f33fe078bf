package persistence

import (
	"time"
)

// PriceRunModel represents the price_runs table
type PriceRunModel struct {
	ID              string            `gorm:"column:id;primaryKey;not null"`
	StartedAt       time.Time         `gorm:"column:started_at;not null"`
	FinishedAt      time.Time         `gorm:"column:finished_at;not null;index"`
	SelectionPath   string            `gorm:"column:selection_path"`
	Sweeps          int               `gorm:"column:sweeps;not null"`
	FinalDelta      float64           `gorm:"column:final_delta;not null"`
	Converged       bool              `gorm:"column:converged;not null"`
	WageIterations  int               `gorm:"column:wage_iterations;not null"`
	WageConverged   bool              `gorm:"column:wage_converged;not null"`
	WageContractive bool              `gorm:"column:wage_contractive;not null;default:true"`
	RatePIO         float64           `gorm:"column:rate_pio;not null"`
	RateSET         float64           `gorm:"column:rate_set;not null"`
	RateTEC         float64           `gorm:"column:rate_tec;not null"`
	RateENG         float64           `gorm:"column:rate_eng;not null"`
	RateSCI         float64           `gorm:"column:rate_sci;not null"`
	Entries         []PriceEntryModel `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PriceRunModel) TableName() string {
	return "price_runs"
}

// PriceEntryModel represents the price_entries table
type PriceEntryModel struct {
	ID       uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID    string  `gorm:"column:run_id;not null;index:idx_entry_lookup,priority:1"`
	Kind     string  `gorm:"column:kind;not null;index:idx_entry_lookup,priority:2"`
	EntryKey string  `gorm:"column:entry_key;not null;index:idx_entry_lookup,priority:3"`
	Source   string  `gorm:"column:source"`
	Total    float64 `gorm:"column:total;not null"`
	Repair   float64 `gorm:"column:repair;not null"`
	Input    float64 `gorm:"column:input;not null"`
	Profit   float64 `gorm:"column:profit;not null"`
	Base     float64 `gorm:"column:base;not null"`
}

func (PriceEntryModel) TableName() string {
	return "price_entries"
}

// PriceRunModels lists every model of the price-run archive for migration
func PriceRunModels() []interface{} {
	return []interface{}{&PriceRunModel{}, &PriceEntryModel{}}
}
