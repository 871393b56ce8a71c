package models

import "time"

// Entry is one row of the key-value table backing the SQLite store
type Entry struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name so it does not depend on gorm's pluralizer
func (Entry) TableName() string {
	return "entries"
}
