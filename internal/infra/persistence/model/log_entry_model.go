// Package model holds the GORM-specific structs mapped to database tables.
package model

import "time"

// LogEntryModel is the GORM-specific struct for the 'log_entries' table.
// Position keeps the table order that the spreadsheet drivers get for free.
type LogEntryModel struct {
	Position   int        `gorm:"primaryKey;autoIncrement:false"`
	EntryID    string     `gorm:"column:entry_id;type:varchar(64);not null;uniqueIndex"`
	OwnerEmail string     `gorm:"type:varchar(320);not null;index"`
	Title      string     `gorm:"type:text;not null"`
	Creator    string     `gorm:"type:text;not null;default:''"`
	Category   string     `gorm:"type:varchar(50);not null;default:''"`
	Genre      string     `gorm:"type:varchar(100);not null;default:''"`
	Year       int        `gorm:"not null;default:0"`
	DateLogged *time.Time `gorm:"type:date"`
	Verdict    string     `gorm:"type:varchar(50);not null;default:''"`
	Thoughts   string     `gorm:"type:text;not null;default:''"`
}

// TableName explicitly sets the table name for GORM.
func (LogEntryModel) TableName() string {
	return "log_entries"
}
