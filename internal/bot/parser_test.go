package bot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandFamilies(t *testing.T) {
	cases := []struct {
		text string
		want Command
	}{
		{"/start", Start{}},
		{"/summary", Summary{}},
		{"/summary extra tokens", Summary{}},
		{"/clear", Clear{}},
		{"/admin", AdminReport{}},
		{"/myFund", MyFundCheck{}},
		{"hello", Unrecognized{Text: "hello"}},
		{"", Unrecognized{Text: ""}},
		{"/myfund", Unrecognized{Text: "/myfund"}}, // case-sensitive
	}
	for _, tc := range cases {
		got, err := Parse(tc.text)
		require.NoError(t, err, "input %q", tc.text)
		assert.Equal(t, tc.want, got, "input %q", tc.text)
	}
}

func TestParseAdd(t *testing.T) {
	got, err := Parse("/add 12.345 usd Lunch")
	require.NoError(t, err)

	add, ok := got.(AddExpense)
	require.True(t, ok)
	assert.True(t, add.Amount.Equal(decimal.RequireFromString("12.345")))
	assert.Equal(t, "USD", add.Currency)
	assert.Equal(t, "Lunch", add.Remark)
}

func TestParseAddRemarkKeepsSpacing(t *testing.T) {
	got, err := Parse("/add 5 usd coffee  with   milk")
	require.NoError(t, err)

	add := got.(AddExpense)
	assert.Equal(t, "coffee  with   milk", add.Remark)
}

func TestParseAddUsageError(t *testing.T) {
	for _, text := range []string{"/add", "/add 5", "/add 5 usd"} {
		_, err := Parse(text)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "input %q", text)
		assert.Equal(t, UsageError, pe.Kind)
	}
}

func TestParseAddInvalidAmount(t *testing.T) {
	_, err := Parse("/add abc usd Lunch")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, InvalidAmount, pe.Kind)
	assert.Equal(t, "❌ Invalid amount. Example: /add 50 USD Lunch", pe.Message)
}
