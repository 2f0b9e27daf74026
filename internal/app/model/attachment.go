package model

import (
	"strings"
	"time"
)

// Attachment is an uploaded image owned by the media store.
type Attachment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UploaderID  uint      `gorm:"index" json:"uploader_id"`
	StorageKey  string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	URL         string    `gorm:"not null" json:"url"`
	Filename    string    `json:"filename"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}
