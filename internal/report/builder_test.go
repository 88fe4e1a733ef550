package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

// fakeStore serves a fixed record set and records retention calls.
type fakeStore struct {
	records map[int64][]domain.Expense

	deleteUser  int64
	deleteYear  int
	deleteMonth int
	deleteCalls int
	deleted     int64
}

func (f *fakeStore) ListByUser(_ context.Context, userID int64) ([]domain.Expense, error) {
	return f.records[userID], nil
}

func (f *fakeStore) DeleteExceptPeriod(_ context.Context, userID int64, year, month int) (int64, error) {
	f.deleteUser, f.deleteYear, f.deleteMonth = userID, year, month
	f.deleteCalls++
	if f.deleteCalls > 1 {
		return 0, nil
	}
	return f.deleted, nil
}

func TestSummaryTextNoExpenses(t *testing.T) {
	b := NewBuilder(&fakeStore{})

	got, err := b.SummaryText(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "📊 You have no expenses recorded yet.", got)
}

func TestSummaryTextLayout(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{records: map[int64][]domain.Expense{
		7: {
			expense("12.35", "USD", "lunch", now),
			expense("7.00", "USD", "LUNCH", now),
			expense("4000.00", "KHR", "coffee with milk", now),
		},
	}}
	b := NewBuilder(store)

	got, err := b.SummaryText(context.Background(), 7)

	require.NoError(t, err)
	want := "📊 Expense Summary Current Month:\n" +
		"- Coffee With Milk: 4000.00\n" +
		"- Lunch: 19.35\n" +
		"\nTotal (KHR): 4000.00" +
		"\nTotal (USD): 19.35"
	assert.Equal(t, want, got)
}

func TestChartDataEmptyRangeReturnsNil(t *testing.T) {
	july := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{records: map[int64][]domain.Expense{
		7: {expense("1.00", "USD", "old", july)},
	}}
	b := NewBuilder(store)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sums, err := b.ChartData(context.Background(), 7, from, to)

	require.NoError(t, err)
	assert.Nil(t, sums)
}

func TestChartDataLowercaseKeys(t *testing.T) {
	august := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{records: map[int64][]domain.Expense{
		7: {
			expense("12.35", "USD", "Lunch", august),
			expense("7.00", "USD", "lunch", august),
		},
	}}
	b := NewBuilder(store)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sums, err := b.ChartData(context.Background(), 7, from, to)

	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.True(t, sums["lunch"].Equal(decimal.RequireFromString("19.35")))
}
