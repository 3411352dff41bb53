package postgres

import (
	"context"
	"database/sql"
	"errors"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (name, description, target_amount, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.TargetAmount, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	p := &domain.Project{}
	query := `SELECT id, name, COALESCE(description, ''), target_amount, status, created_at, updated_at FROM projects WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.TargetAmount, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT id, name, COALESCE(description, ''), target_amount, status, created_at, updated_at FROM projects ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.TargetAmount, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = $2, description = $3, target_amount = $4, status = $5, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.TargetAmount, p.Status)
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

type welfareCaseRepository struct {
	db *sql.DB
}

func NewWelfareCaseRepository(db *sql.DB) repository.WelfareCaseRepository {
	return &welfareCaseRepository{db: db}
}

func (r *welfareCaseRepository) Create(ctx context.Context, wc *domain.WelfareCase) error {
	query := `INSERT INTO welfare_cases (title, description, beneficiary_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, wc.Title, wc.Description, wc.BeneficiaryID, wc.Status).
		Scan(&wc.ID, &wc.CreatedAt, &wc.UpdatedAt)
}

func (r *welfareCaseRepository) GetByID(ctx context.Context, id int32) (*domain.WelfareCase, error) {
	wc := &domain.WelfareCase{}
	query := `SELECT id, title, COALESCE(description, ''), beneficiary_id, status, created_at, updated_at FROM welfare_cases WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&wc.ID, &wc.Title, &wc.Description, &wc.BeneficiaryID, &wc.Status, &wc.CreatedAt, &wc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wc, nil
}

func (r *welfareCaseRepository) List(ctx context.Context, status string) ([]domain.WelfareCase, error) {
	query := `SELECT id, title, COALESCE(description, ''), beneficiary_id, status, created_at, updated_at FROM welfare_cases`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []domain.WelfareCase
	for rows.Next() {
		var wc domain.WelfareCase
		if err := rows.Scan(&wc.ID, &wc.Title, &wc.Description, &wc.BeneficiaryID, &wc.Status, &wc.CreatedAt, &wc.UpdatedAt); err != nil {
			return nil, err
		}
		cases = append(cases, wc)
	}
	return cases, rows.Err()
}

func (r *welfareCaseRepository) Update(ctx context.Context, wc *domain.WelfareCase) error {
	query := `UPDATE welfare_cases SET title = $2, description = $3, status = $4, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, wc.ID, wc.Title, wc.Description, wc.Status)
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
