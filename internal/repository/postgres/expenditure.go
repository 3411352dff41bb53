package postgres

import (
	"context"
	"database/sql"
	"errors"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type expenditureRepository struct {
	db *sql.DB
}

func NewExpenditureRepository(db *sql.DB) repository.ExpenditureRepository {
	return &expenditureRepository{db: db}
}

func (r *expenditureRepository) Create(ctx context.Context, e *domain.Expenditure) error {
	query := `INSERT INTO expenditures (category, amount, description, incurred_on, recorded_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, e.Category, e.Amount, e.Description, e.IncurredOn, e.RecordedBy).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *expenditureRepository) GetByID(ctx context.Context, id int32) (*domain.Expenditure, error) {
	e := &domain.Expenditure{}
	query := `SELECT id, category, amount, COALESCE(description, ''), incurred_on, recorded_by, created_at, updated_at
	          FROM expenditures WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Category, &e.Amount, &e.Description, &e.IncurredOn, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *expenditureRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Expenditure, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, category, amount, COALESCE(description, ''), incurred_on, recorded_by, created_at, updated_at
	          FROM expenditures ORDER BY incurred_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenditures []domain.Expenditure
	for rows.Next() {
		var e domain.Expenditure
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Description, &e.IncurredOn, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		expenditures = append(expenditures, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM expenditures`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return expenditures, count, nil
}

func (r *expenditureRepository) Update(ctx context.Context, e *domain.Expenditure) error {
	query := `UPDATE expenditures SET category = $2, amount = $3, description = $4, incurred_on = $5, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, e.ID, e.Category, e.Amount, e.Description, e.IncurredOn)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenditureRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenditures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
