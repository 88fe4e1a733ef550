package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

const NoExpensesMessage = "📊 You have no expenses recorded yet."

// LedgerStore is the slice of the expense store the report side needs.
type LedgerStore interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Expense, error)
	DeleteExceptPeriod(ctx context.Context, userID int64, year, month int) (int64, error)
}

type Builder struct {
	store LedgerStore
}

func NewBuilder(store LedgerStore) *Builder { return &Builder{store: store} }

// ChartData returns lowercase-key category sums for the user's records in
// [from, to]. A nil map means nothing fell in the range; the caller skips
// rendering, it is not an error.
func (b *Builder) ChartData(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error) {
	records, err := b.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	inRange := FilterByDate(records, from, to)
	if len(inRange) == 0 {
		return nil, nil
	}
	return SumByCategory(inRange, KeyLower), nil
}

// SummaryText renders the all-time summary: one line per capitalized
// category, then a total per currency. Group keys are sorted so a single
// computation always renders the same way.
func (b *Builder) SummaryText(ctx context.Context, userID int64) (string, error) {
	records, err := b.store.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return NoExpensesMessage, nil
	}

	byCategory := SumByCategory(records, KeyCapital)
	byCurrency := SumByCurrency(records)

	var sb strings.Builder
	sb.WriteString("📊 Expense Summary Current Month:\n")
	for _, cat := range sortedKeys(byCategory) {
		sb.WriteString("- ")
		sb.WriteString(cat)
		sb.WriteString(": ")
		sb.WriteString(byCategory[cat].StringFixed(2))
		sb.WriteString("\n")
	}
	for _, cur := range sortedKeys(byCurrency) {
		sb.WriteString("\nTotal (")
		sb.WriteString(cur)
		sb.WriteString("): ")
		sb.WriteString(byCurrency[cur].StringFixed(2))
	}
	return sb.String(), nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
