package model

import "time"

// DisputedTransaction is a row of the merchant dashboard.
type DisputedTransaction struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	TransactionID string    `gorm:"size:64;uniqueIndex;not null" json:"transaction_id" yaml:"transaction_id"`
	Amount        float64   `gorm:"not null" json:"amount" yaml:"amount"`
	Date          string    `gorm:"size:32;not null" json:"date" yaml:"date"`
	Customer      string    `gorm:"size:128;not null" json:"customer" yaml:"customer"`
	Status        string    `gorm:"size:32;not null" json:"status" yaml:"status"`
	Type          string    `gorm:"size:64;not null" json:"type" yaml:"type"`
	CreatedAt     time.Time `json:"created_at" yaml:"-"`
}
