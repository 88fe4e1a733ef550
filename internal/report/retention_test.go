package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

type fakeResolver struct {
	users map[string]*domain.User
}

func (f *fakeResolver) FindByHandle(_ context.Context, handle string) (*domain.User, error) {
	return f.users[handle], nil
}

func TestClearExceptCurrentMonthUnknownUser(t *testing.T) {
	r := NewRetention(&fakeStore{}, &fakeResolver{users: map[string]*domain.User{}})

	got, err := r.ClearExceptCurrentMonth(context.Background(), "ghost", time.Now())

	require.NoError(t, err)
	assert.Equal(t, UserNotFound, got)
}

func TestClearExceptCurrentMonthDelegatesPeriod(t *testing.T) {
	store := &fakeStore{deleted: 3}
	r := NewRetention(store, &fakeResolver{users: map[string]*domain.User{
		"alice": {ID: 7, Username: "alice"},
	}})

	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	got, err := r.ClearExceptCurrentMonth(context.Background(), "alice", now)

	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
	assert.Equal(t, int64(7), store.deleteUser)
	assert.Equal(t, 2026, store.deleteYear)
	assert.Equal(t, 8, store.deleteMonth)

	// Second run finds nothing left outside the month.
	got, err = r.ClearExceptCurrentMonth(context.Background(), "alice", now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}
