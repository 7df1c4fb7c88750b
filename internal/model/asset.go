package model

import "time"

// Asset is one uploaded supporting document. Bytes live on disk; only the
// path is stored here.
type Asset struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	AssetID     string    `gorm:"size:32;uniqueIndex;not null" json:"asset_id"`
	SessionID   string    `gorm:"size:32;index" json:"session_id,omitempty"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	ContentType string    `gorm:"size:128" json:"content_type"`
	StoredPath  string    `gorm:"size:512;not null" json:"-"`
	PageCount   int       `json:"page_count,omitempty"`
	TextPreview string    `gorm:"type:text" json:"text_preview,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
