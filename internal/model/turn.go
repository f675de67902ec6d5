package model

import "time"

// ChatTurn is one question/answer exchange. DatasetID is nil for general
// chat; TurnIndex is the per-dataset sequence number, 0 when unbound.
type ChatTurn struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Response     string    `gorm:"type:text;not null" json:"response"`
	IsPredefined bool      `gorm:"not null;default:false" json:"is_predefined"`
	DatasetID    *string   `gorm:"size:36;index" json:"dataset_id"`
	TurnIndex    int       `gorm:"not null;default:0" json:"turn_index"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}
