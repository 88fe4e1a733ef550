package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/domain"
)

type Users struct{ pool *pgxpool.Pool }

func NewUsers(p *pgxpool.Pool) *Users { return &Users{pool: p} }

// Create registers a user under their Telegram chat id. The upsert keeps
// first contact race-free: concurrent creates collapse into one row.
func (r *Users) Create(ctx context.Context, username string, id int64) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_info(id, username)
		VALUES($1,$2)
		ON CONFLICT (id) DO UPDATE SET username=EXCLUDED.username
		RETURNING id, username, created_on
	`, id, username).Scan(&u.ID, &u.Username, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByHandle returns (nil, nil) when the handle is unknown.
func (r *Users) FindByHandle(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, created_on FROM user_info WHERE username=$1
	`, username).Scan(&u.ID, &u.Username, &u.CreatedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Users) ListAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, username, created_on FROM user_info ORDER BY created_on`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if e := rows.Scan(&u.ID, &u.Username, &u.CreatedOn); e != nil {
			return nil, e
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
