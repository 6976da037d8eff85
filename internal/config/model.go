package config

import (
	"time"

	"gorm.io/datatypes"
)

// ConfigModel database model for a scan configuration. Targets and Ports
// are stored as JSON columns.
type ConfigModel struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Targets     datatypes.JSON
	RangeStart  string
	RangeEnd    string
	Ports       datatypes.JSON
	TimeoutMs   int
	Concurrency int
	Strategy    string
	Loaded      time.Time
}
