package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is created on first contact and never deleted. ID is the
// Telegram chat id assigned by the platform.
type User struct {
	ID        int64
	Username  string
	CreatedOn time.Time
}

// Expense is immutable once written. Amount carries exactly the value
// rounded at creation time; it is never re-rounded.
type Expense struct {
	ID        int64
	UserID    int64
	Currency  string
	Amount    decimal.Decimal
	Remark    string
	CreatedOn time.Time
}
