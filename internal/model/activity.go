package model

import "time"

const (
	ActivityChat          = "chat"
	ActivityUploadDataset = "upload_dataset"
	ActivityClearAll      = "clear_all"
)

// ActivityEvent is an audit entry consumed from the activity queue.
type ActivityEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:32;not null;index" json:"type"`
	Description string    `gorm:"size:512;not null" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"timestamp"`
}
