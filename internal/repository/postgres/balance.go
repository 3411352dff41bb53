package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type balanceRepository struct {
	db *sql.DB
}

func NewBalanceRepository(db *sql.DB) repository.BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) Create(ctx context.Context, memberID int32) error {
	query := `INSERT INTO balances (member_id, prepaid, due, updated_at) VALUES ($1, 0, 0, NOW())`
	_, err := r.db.ExecContext(ctx, query, memberID)
	if err != nil {
		return fmt.Errorf("failed to create balance: %w", err)
	}
	return nil
}

func (r *balanceRepository) Get(ctx context.Context, memberID int32) (*domain.Balance, error) {
	b := &domain.Balance{}
	query := `SELECT member_id, prepaid, due, updated_at FROM balances WHERE member_id = $1`
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&b.MemberID, &b.Prepaid, &b.Due, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// The waterfall arithmetic runs server-side in a single statement; GREATEST
// against the pre-update row values makes the operation atomic without a
// separate read or row lock.
func (r *balanceRepository) ApplyAccrual(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	query := `UPDATE balances
	          SET due = due + GREATEST($2 - prepaid, 0),
	              prepaid = GREATEST(prepaid - $2, 0),
	              updated_at = NOW()
	          WHERE member_id = $1
	          RETURNING member_id, prepaid, due, updated_at`
	return r.applyWaterfall(ctx, query, memberID, amount)
}

func (r *balanceRepository) ApplySettlement(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	query := `UPDATE balances
	          SET prepaid = prepaid + GREATEST($2 - due, 0),
	              due = GREATEST(due - $2, 0),
	              updated_at = NOW()
	          WHERE member_id = $1
	          RETURNING member_id, prepaid, due, updated_at`
	return r.applyWaterfall(ctx, query, memberID, amount)
}

func (r *balanceRepository) applyWaterfall(ctx context.Context, query string, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	b := &domain.Balance{}
	err := r.db.QueryRowContext(ctx, query, memberID, amount).Scan(&b.MemberID, &b.Prepaid, &b.Due, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *balanceRepository) ListOwing(ctx context.Context) ([]domain.Balance, error) {
	query := `SELECT member_id, prepaid, due, updated_at FROM balances WHERE due > 0 ORDER BY member_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []domain.Balance
	for rows.Next() {
		var b domain.Balance
		if err := rows.Scan(&b.MemberID, &b.Prepaid, &b.Due, &b.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
