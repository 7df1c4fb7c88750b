package model

import "time"

// TranscriptMessage is an archived, confirmed portal chat message.
type TranscriptMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:32;not null;index" json:"session_id"`
	Portal    string    `gorm:"size:16;not null;index" json:"portal"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	SentAt    time.Time `gorm:"not null" json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`
}
