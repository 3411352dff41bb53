package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository/postgres"
)

func TestMemberRepository_RefreshMaturityStatuses(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)

	t.Run("BothUpdatesRunInOneTransaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewMemberRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE members SET maturity_status`).
			WithArgs(domain.MaturityStatusMatured, now).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`UPDATE members SET maturity_status`).
			WithArgs(domain.MaturityStatusProbation, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		matured, probation, err := repo.RefreshMaturityStatuses(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), matured)
		assert.Equal(t, int64(1), probation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FirstUpdateFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewMemberRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE members SET maturity_status`).
			WithArgs(domain.MaturityStatusMatured, now).
			WillReturnError(context.DeadlineExceeded)
		mock.ExpectRollback()

		_, _, err = repo.RefreshMaturityStatuses(ctx, now)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemberRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	columns := []string{"id", "member_no", "full_name", "phone_number", "email", "id_number", "photo_url",
		"status", "maturity_status", "probation_end_date", "joined_on", "created_at", "updated_at"}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM members WHERE id`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "WF-001", "Jane Wanjiku", "+254700000001", "jane@example.com", "12345678", "",
					domain.MemberStatusActive, domain.MaturityStatusProbation, now.AddDate(0, 3, 0), now, now, now))

		m, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Jane Wanjiku", m.FullName)
		assert.Equal(t, domain.MaturityStatusProbation, m.MaturityStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM members WHERE id`).
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
