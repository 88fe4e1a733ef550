package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/report"
)

// Inbound is one message as seen by the dispatcher, already stripped of
// transport detail.
type Inbound struct {
	ChatID   int64
	Handle   string
	Text     string
	Personal bool
}

// Outbound is an instruction for the transport layer; the dispatcher
// itself performs no I/O besides the injected collaborators.
type Outbound interface{ outbound() }

type SendText struct {
	ChatID int64
	Body   string
}

type SendPhoto struct {
	ChatID int64
	Bytes  []byte
}

func (SendText) outbound()  {}
func (SendPhoto) outbound() {}

// UserDirectory resolves and registers users by handle. FindByHandle
// returns (nil, nil) for an unknown handle.
type UserDirectory interface {
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	Create(ctx context.Context, handle string, id int64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

// LedgerStore is the expense store as the dispatcher consumes it.
type LedgerStore interface {
	Append(ctx context.Context, e domain.Expense) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Expense, error)
	DeleteExceptPeriod(ctx context.Context, userID int64, year, month int) (int64, error)
}

// ChartRenderer turns category sums into encoded image bytes.
type ChartRenderer interface {
	Render(sums map[string]decimal.Decimal) ([]byte, error)
}

type Dispatcher struct {
	store     LedgerStore
	directory UserDirectory
	renderer  ChartRenderer
	builder   *report.Builder
	retention *report.Retention

	adminHandles   map[string]struct{}
	operatorChatID int64
	monthlyBudget  decimal.Decimal

	now func() time.Time
}

func NewDispatcher(
	store LedgerStore,
	directory UserDirectory,
	renderer ChartRenderer,
	adminHandles map[string]struct{},
	operatorChatID int64,
	monthlyBudget decimal.Decimal,
	now func() time.Time,
) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		store:          store,
		directory:      directory,
		renderer:       renderer,
		builder:        report.NewBuilder(store),
		retention:      report.NewRetention(store, directory),
		adminHandles:   adminHandles,
		operatorChatID: operatorChatID,
		monthlyBudget:  monthlyBudget,
		now:            now,
	}
}

const nonPersonalReply = "Our bot only available for personal chat.\nPlease contact our owner @Lyhor_Hieng in order to suggest extra feature."

// Dispatch processes one inbound message and returns the outputs to
// deliver. Every error from a handler is converted to an operator
// diagnostic; nothing escapes as a raw error to the end user.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) []Outbound {
	if !in.Personal {
		return []Outbound{SendText{ChatID: in.ChatID, Body: nonPersonalReply}}
	}

	var out []Outbound

	user, err := d.directory.FindByHandle(ctx, in.Handle)
	if err != nil {
		return append(out, d.diagnostic("resolveUser", err))
	}
	if user == nil {
		user, err = d.directory.Create(ctx, in.Handle, in.ChatID)
		if err != nil {
			return append(out, d.diagnostic("createUser", err))
		}
		out = append(out, SendText{ChatID: in.ChatID, Body: "Welcome " + in.Handle + "!"})
	}

	cmd, err := Parse(in.Text)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return append(out, SendText{ChatID: in.ChatID, Body: pe.Message})
		}
		return append(out, d.diagnostic("parse", err))
	}

	switch c := cmd.(type) {
	case Start:
		out = append(out, SendText{ChatID: in.ChatID, Body: "Welcome to Expense Tracker " + in.Handle + "!"})
	case AddExpense:
		out = append(out, d.handleAdd(ctx, in, user, c)...)
	case Summary:
		out = append(out, d.handleSummary(ctx, in, user)...)
	case Clear:
		out = append(out, d.handleClear(ctx, in)...)
	case AdminReport:
		if d.isAdmin(in.Handle) {
			out = append(out, d.handleAdminReport(ctx, in)...)
		}
	case MyFundCheck:
		if d.isAdmin(in.Handle) {
			out = append(out, d.handleMyFund(ctx, in, user)...)
		}
	case Unrecognized:
		// No default reply.
	}

	return out
}

func (d *Dispatcher) isAdmin(handle string) bool {
	_, ok := d.adminHandles[handle]
	return ok
}

func (d *Dispatcher) handleAdd(ctx context.Context, in Inbound, user *domain.User, c AddExpense) []Outbound {
	// Half-up to 2 places, once, at creation. The stored value is never
	// re-rounded.
	amount := c.Amount.Round(2)

	_, err := d.store.Append(ctx, domain.Expense{
		UserID:   user.ID,
		Currency: c.Currency,
		Amount:   amount,
		Remark:   c.Remark,
	})
	if err != nil {
		return []Outbound{
			d.diagnostic("/add", err),
			SendText{ChatID: in.ChatID, Body: "❌ Failed to record your expense. Please try again."},
		}
	}

	body := fmt.Sprintf("✅ Added: %s %s - %s", amount.StringFixed(2), c.Currency, c.Remark)
	return []Outbound{SendText{ChatID: in.ChatID, Body: body}}
}

func (d *Dispatcher) handleSummary(ctx context.Context, in Inbound, user *domain.User) []Outbound {
	var out []Outbound

	from, to := report.MonthRange(d.now())
	sums, err := d.builder.ChartData(ctx, user.ID, from, to)
	if err != nil {
		return []Outbound{d.diagnostic("/summary", err)}
	}

	if sums != nil {
		png, rerr := d.renderer.Render(sums)
		if rerr != nil {
			// The photo is lost; the text summary still goes out.
			out = append(out, d.diagnostic("/summary", rerr))
		} else {
			out = append(out, SendPhoto{ChatID: in.ChatID, Bytes: png})
		}
	}

	text, err := d.builder.SummaryText(ctx, user.ID)
	if err != nil {
		return append(out, d.diagnostic("/summary", err))
	}
	return append(out, SendText{ChatID: in.ChatID, Body: text})
}

func (d *Dispatcher) handleClear(ctx context.Context, in Inbound) []Outbound {
	deleted, err := d.retention.ClearExceptCurrentMonth(ctx, in.Handle, d.now())
	if err != nil {
		return []Outbound{d.diagnostic("/clear", err)}
	}
	if deleted == report.UserNotFound {
		return []Outbound{SendText{ChatID: in.ChatID, Body: "This current user did not exist in our system."}}
	}
	body := fmt.Sprintf("All expenses except this month cleared.\nExpense record deleted: %d", deleted)
	return []Outbound{SendText{ChatID: in.ChatID, Body: body}}
}

func (d *Dispatcher) handleAdminReport(ctx context.Context, in Inbound) []Outbound {
	users, err := d.directory.ListAll(ctx)
	if err != nil {
		return []Outbound{d.diagnostic("/admin", err)}
	}

	var out []Outbound
	for _, u := range users {
		records, err := d.store.ListByUser(ctx, u.ID)
		if err != nil {
			return append(out, d.diagnostic("/admin", err))
		}
		if len(records) == 0 {
			continue
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "📊 Expense list for %s:\n\n", u.Username)
		for _, e := range records {
			fmt.Fprintf(&sb, "• %s - %s (%s)\n",
				e.Remark, e.Amount.StringFixed(2), e.CreatedOn.Format("02/01/06 03:04 PM"))
		}
		out = append(out, SendText{ChatID: in.ChatID, Body: sb.String()})
	}
	return out
}

func (d *Dispatcher) handleMyFund(ctx context.Context, in Inbound, user *domain.User) []Outbound {
	records, err := d.store.ListByUser(ctx, user.ID)
	if err != nil {
		return []Outbound{d.diagnostic("/myFund", err)}
	}

	from, to := report.MonthRange(d.now())
	spent := decimal.Zero
	for _, e := range report.FilterByDate(records, from, to) {
		spent = spent.Add(e.Amount)
	}

	left := d.monthlyBudget.Sub(spent)
	body := fmt.Sprintf("💵 Hello Lyhor, Your budget left in this month is: %s", left.StringFixed(2))
	return []Outbound{SendText{ChatID: in.ChatID, Body: body}}
}

func (d *Dispatcher) diagnostic(errAt string, err error) Outbound {
	return SendText{
		ChatID: d.operatorChatID,
		Body:   fmt.Sprintf("⚠️An error occurred\n#ERR_AT: %s\n#MSG: %s", errAt, err.Error()),
	}
}
