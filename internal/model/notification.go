package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification is one recorded donation event.
// Maps to the donation_notification table: amount is numeric(15,2),
// user_id and user_name are nullable, created_at is set by the database.
type Notification struct {
	ID        int64           `json:"id"`
	UserID    *int64          `json:"user_id"`
	UserName  *string         `json:"user_name"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}
