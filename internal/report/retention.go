package report

import (
	"context"
	"time"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

// UserResolver is the slice of the user directory retention needs.
type UserResolver interface {
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
}

// UserNotFound signals that the handle did not resolve; callers must tell
// it apart from "zero rows deleted".
const UserNotFound int64 = -1

type Retention struct {
	store     LedgerStore
	directory UserResolver
}

func NewRetention(store LedgerStore, directory UserResolver) *Retention {
	return &Retention{store: store, directory: directory}
}

// ClearExceptCurrentMonth drops every record of the user dated outside
// now's calendar month and returns the number removed, or UserNotFound.
// Running it twice is idempotent: the second call removes 0.
func (r *Retention) ClearExceptCurrentMonth(ctx context.Context, handle string, now time.Time) (int64, error) {
	user, err := r.directory.FindByHandle(ctx, handle)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return UserNotFound, nil
	}
	return r.store.DeleteExceptPeriod(ctx, user.ID, now.Year(), int(now.Month()))
}
