package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (member_no, full_name, phone_number, email, id_number, photo_url, status, maturity_status, probation_end_date, joined_on, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		m.MemberNo, m.FullName, m.PhoneNumber, m.Email, m.IDNumber, m.PhotoURL,
		m.Status, m.MaturityStatus, m.ProbationEndDate, m.JoinedOn,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

const memberColumns = `id, member_no, full_name, phone_number, email, id_number, COALESCE(photo_url, ''), status, maturity_status, probation_end_date, joined_on, created_at, updated_at`

func (r *memberRepository) scanMember(row *sql.Row) (*domain.Member, error) {
	m := &domain.Member{}
	err := row.Scan(&m.ID, &m.MemberNo, &m.FullName, &m.PhoneNumber, &m.Email, &m.IDNumber, &m.PhotoURL,
		&m.Status, &m.MaturityStatus, &m.ProbationEndDate, &m.JoinedOn, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return r.scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) GetByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE phone_number = $1`
	return r.scanMember(r.db.QueryRowContext(ctx, query, phone))
}

func (r *memberRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Member, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY full_name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.MemberNo, &m.FullName, &m.PhoneNumber, &m.Email, &m.IDNumber, &m.PhotoURL,
			&m.Status, &m.MaturityStatus, &m.ProbationEndDate, &m.JoinedOn, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM members`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return members, count, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET full_name = $2, phone_number = $3, email = $4, id_number = $5, photo_url = $6, status = $7, probation_end_date = $8, updated_at = NOW()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, m.ID, m.FullName, m.PhoneNumber, m.Email, m.IDNumber, m.PhotoURL, m.Status, m.ProbationEndDate)
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

func (r *memberRepository) ListActiveIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM members WHERE status = $1 ORDER BY id`, domain.MemberStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RefreshMaturityStatuses issues both bulk updates inside one transaction so
// the table never shows a mixed state between the two writes. The job is the
// single writer of maturity_status; the field is re-derived every run, so a
// probation_end_date pushed into the future flips a member back to probation.
func (r *memberRepository) RefreshMaturityStatuses(ctx context.Context, now time.Time) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE members SET maturity_status = $1, updated_at = NOW() WHERE probation_end_date <= $2 AND maturity_status <> $1`,
		domain.MaturityStatusMatured, now)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to mark matured members: %w", err)
	}
	matured, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx,
		`UPDATE members SET maturity_status = $1, updated_at = NOW() WHERE probation_end_date > $2 AND maturity_status <> $1`,
		domain.MaturityStatusProbation, now)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to mark probation members: %w", err)
	}
	probation, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit maturity refresh: %w", err)
	}
	return matured, probation, nil
}
