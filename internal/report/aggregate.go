package report

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

// NormalizeMode selects how a free-text remark becomes a grouping key.
type NormalizeMode int

const (
	// KeyLower lower-cases the remark verbatim. Used for chart data.
	KeyLower NormalizeMode = iota
	// KeyCapital title-cases each word and collapses spacing. Used for
	// the text summary. Idempotent.
	KeyCapital
)

// CapitalizeWords lower-cases the remark, upper-cases the first rune of
// each whitespace-separated word and rejoins with single spaces.
func CapitalizeWords(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func normalizeKey(remark string, mode NormalizeMode) string {
	if remark == "" {
		return ""
	}
	if mode == KeyLower {
		return strings.ToLower(remark)
	}
	return CapitalizeWords(remark)
}

// SumByCategory groups the records by normalized remark and sums each
// group. Decimal addition, so the result is independent of record order.
func SumByCategory(records []domain.Expense, mode NormalizeMode) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(records))
	for _, e := range records {
		key := normalizeKey(e.Remark, mode)
		sums[key] = sums[key].Add(e.Amount)
	}
	return sums
}

// SumByCurrency groups by the currency code exactly as stored.
func SumByCurrency(records []domain.Expense) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(records))
	for _, e := range records {
		sums[e.Currency] = sums[e.Currency].Add(e.Amount)
	}
	return sums
}

// FilterByDate keeps records whose creation date falls in [from, to],
// inclusive at both ends. Only the calendar date counts; time of day is
// ignored.
func FilterByDate(records []domain.Expense, from, to time.Time) []domain.Expense {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	lo := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	hi := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	var out []domain.Expense
	for _, e := range records {
		y, m, d := e.CreatedOn.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if !day.Before(lo) && !day.After(hi) {
			out = append(out, e)
		}
	}
	return out
}

// MonthRange returns the first and last calendar day of now's month.
func MonthRange(now time.Time) (from, to time.Time) {
	y, m, _ := now.Date()
	from = time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 1, -1)
	return from, to
}
