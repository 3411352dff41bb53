package postgres

import (
	"context"
	"database/sql"
	"errors"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type disbursementRepository struct {
	db *sql.DB
}

func NewDisbursementRepository(db *sql.DB) repository.DisbursementRepository {
	return &disbursementRepository{db: db}
}

func (r *disbursementRepository) Create(ctx context.Context, d *domain.Disbursement) error {
	query := `INSERT INTO disbursements (case_id, member_id, amount, method, reference, status, approved_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, d.CaseID, d.MemberID, d.Amount, d.Method, d.Reference, d.Status, d.ApprovedBy).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *disbursementRepository) GetByID(ctx context.Context, id int32) (*domain.Disbursement, error) {
	d := &domain.Disbursement{}
	query := `SELECT id, case_id, member_id, amount, method, COALESCE(reference, ''), status, approved_by, created_at, updated_at
	          FROM disbursements WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.CaseID, &d.MemberID, &d.Amount, &d.Method, &d.Reference, &d.Status, &d.ApprovedBy, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *disbursementRepository) ListByCase(ctx context.Context, caseID int32) ([]domain.Disbursement, error) {
	query := `SELECT id, case_id, member_id, amount, method, COALESCE(reference, ''), status, approved_by, created_at, updated_at
	          FROM disbursements WHERE case_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disbursements []domain.Disbursement
	for rows.Next() {
		var d domain.Disbursement
		if err := rows.Scan(&d.ID, &d.CaseID, &d.MemberID, &d.Amount, &d.Method, &d.Reference, &d.Status, &d.ApprovedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		disbursements = append(disbursements, d)
	}
	return disbursements, rows.Err()
}

func (r *disbursementRepository) Update(ctx context.Context, d *domain.Disbursement) error {
	query := `UPDATE disbursements SET amount = $2, method = $3, reference = $4, status = $5, approved_by = $6, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, d.ID, d.Amount, d.Method, d.Reference, d.Status, d.ApprovedBy)
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
