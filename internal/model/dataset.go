package model

import "time"

type Dataset struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FileName  string    `gorm:"size:256;not null" json:"filename"`
	FilePath  string    `gorm:"size:512;not null" json:"-"`
	RowCount  int       `gorm:"not null;default:0" json:"row_count"`
	CreatedAt time.Time `json:"upload_date"`
}
