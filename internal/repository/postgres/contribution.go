package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type contributionRepository struct {
	db *sql.DB
}

func NewContributionRepository(db *sql.DB) repository.ContributionRepository {
	return &contributionRepository{db: db}
}

// RecordPayment writes the contribution, its transaction and (for monthly
// dues) the balance settlement in one database transaction. A failure at any
// step rolls everything back so no partial payment state is persisted.
func (r *contributionRepository) RecordPayment(ctx context.Context, c *domain.Contribution, t *domain.Transaction) (*domain.Balance, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO contributions (member_id, amount, contribution_type, project_id, case_id, narrative, recorded_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_at`,
		c.MemberID, c.Amount, c.Type, c.ProjectID, c.CaseID, c.Narrative, c.RecordedBy,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contribution: %w", err)
	}

	t.ContributionID = c.ID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions (contribution_id, member_id, amount, method, reference, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`,
		t.ContributionID, t.MemberID, t.Amount, t.Method, t.Reference, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	var balance *domain.Balance
	if c.Type == domain.ContributionTypeMonthly {
		balance = &domain.Balance{}
		err = tx.QueryRowContext(ctx,
			`UPDATE balances
			 SET prepaid = prepaid + GREATEST($2 - due, 0),
			     due = GREATEST(due - $2, 0),
			     updated_at = NOW()
			 WHERE member_id = $1
			 RETURNING member_id, prepaid, due, updated_at`,
			c.MemberID, c.Amount,
		).Scan(&balance.MemberID, &balance.Prepaid, &balance.Due, &balance.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to settle balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return balance, nil
}

func (r *contributionRepository) GetByID(ctx context.Context, id int32) (*domain.Contribution, error) {
	c := &domain.Contribution{}
	query := `SELECT id, member_id, amount, contribution_type, project_id, case_id, COALESCE(narrative, ''), recorded_by, created_at
	          FROM contributions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.MemberID, &c.Amount, &c.Type, &c.ProjectID, &c.CaseID, &c.Narrative, &c.RecordedBy, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contributionRepository) ListByMember(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, member_id, amount, contribution_type, project_id, case_id, COALESCE(narrative, ''), recorded_by, created_at
	          FROM contributions WHERE member_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, memberID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.ID, &c.MemberID, &c.Amount, &c.Type, &c.ProjectID, &c.CaseID, &c.Narrative, &c.RecordedBy, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM contributions WHERE member_id = $1`, memberID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return contributions, count, nil
}
