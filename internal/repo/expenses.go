package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

type Expenses struct{ pool *pgxpool.Pool }

func NewExpenses(p *pgxpool.Pool) *Expenses { return &Expenses{pool: p} }

func (r *Expenses) Append(ctx context.Context, e domain.Expense) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO expense(user_id, currency, amount, remark)
		VALUES($1,$2,$3,$4)
		RETURNING expense_id
	`, e.UserID, e.Currency, e.Amount, e.Remark).Scan(&id)
	return id, err
}

func (r *Expenses) ListByUser(ctx context.Context, userID int64) ([]domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT expense_id, user_id, currency, amount, remark, created_on
		FROM expense
		WHERE user_id=$1
		ORDER BY created_on
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Currency, &e.Amount, &e.Remark, &e.CreatedOn); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteExceptPeriod removes every record of the user created outside the
// given calendar year/month and reports how many rows went away.
func (r *Expenses) DeleteExceptPeriod(ctx context.Context, userID int64, year, month int) (int64, error) {
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM expense
		WHERE user_id=$1
		  AND (EXTRACT(YEAR FROM created_on) <> $2
		       OR EXTRACT(MONTH FROM created_on) <> $3)
	`, userID, year, month)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
