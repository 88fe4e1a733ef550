package bot

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Command is the closed set of actions a message can request. Commands
// are transient; nothing here is persisted.
type Command interface{ commandName() string }

type Start struct{}

type AddExpense struct {
	Amount   decimal.Decimal
	Currency string
	Remark   string
}

type Summary struct{}

type Clear struct{}

type AdminReport struct{}

type MyFundCheck struct{}

type Unrecognized struct{ Text string }

func (Start) commandName() string        { return "/start" }
func (AddExpense) commandName() string   { return "/add" }
func (Summary) commandName() string      { return "/summary" }
func (Clear) commandName() string        { return "/clear" }
func (AdminReport) commandName() string  { return "/admin" }
func (MyFundCheck) commandName() string  { return "/myFund" }
func (Unrecognized) commandName() string { return "unrecognized" }

type ParseErrorKind int

const (
	UsageError ParseErrorKind = iota
	InvalidAmount
)

type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string { return e.Message }

var whitespace = regexp.MustCompile(`\s+`)

// Parse tokenizes a message into a Command. It is total and touches no
// storage: every input yields either a Command or a *ParseError.
func Parse(text string) (Command, error) {
	switch {
	case strings.HasPrefix(text, "/start"):
		return Start{}, nil
	case strings.HasPrefix(text, "/add"):
		return parseAdd(text)
	case strings.HasPrefix(text, "/summary"):
		return Summary{}, nil
	case strings.HasPrefix(text, "/clear"):
		return Clear{}, nil
	case strings.HasPrefix(text, "/admin"):
		return AdminReport{}, nil
	case strings.HasPrefix(text, "/myFund"):
		return MyFundCheck{}, nil
	default:
		return Unrecognized{Text: text}, nil
	}
}

// parseAdd expects "/add <amount> <currency> <remark...>". The remark is
// the remainder of the line after the third split and keeps its internal
// spacing.
func parseAdd(text string) (Command, error) {
	parts := whitespace.Split(strings.TrimSpace(text), 4)
	if len(parts) < 4 {
		return nil, &ParseError{Kind: UsageError, Message: "❌ Usage: /add <amount> <currency> <remark>"}
	}

	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return nil, &ParseError{Kind: InvalidAmount, Message: "❌ Invalid amount. Example: /add 50 USD Lunch"}
	}

	return AddExpense{
		Amount:   amount,
		Currency: strings.ToUpper(parts[2]),
		Remark:   parts[3],
	}, nil
}
