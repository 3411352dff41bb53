package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository/postgres"
)

func TestContributionRepository_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("MonthlyPaymentSettlesBalanceInSameTransaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewContributionRepository(db)
		now := time.Now()
		amount := decimal.RequireFromString("500")

		c := &domain.Contribution{MemberID: 7, Amount: amount, Type: domain.ContributionTypeMonthly, RecordedBy: 2}
		tx := &domain.Transaction{MemberID: 7, Amount: amount, Method: domain.PaymentMethodCash, Reference: "ref-1", Status: domain.TransactionStatusCompleted}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contributions`).
			WithArgs(c.MemberID, amount, c.Type, nil, nil, c.Narrative, c.RecordedBy).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(int32(11), tx.MemberID, amount, tx.Method, tx.Reference, tx.Status).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(21, now))
		mock.ExpectQuery(`UPDATE balances`).
			WithArgs(c.MemberID, amount).
			WillReturnRows(sqlmock.NewRows([]string{"member_id", "prepaid", "due", "updated_at"}).
				AddRow(7, "0", "0", now))
		mock.ExpectCommit()

		balance, err := repo.RecordPayment(ctx, c, tx)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), c.ID)
		assert.Equal(t, int32(11), tx.ContributionID)
		assert.Equal(t, int32(21), tx.ID)
		assert.True(t, balance.Due.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ProjectPaymentSkipsBalance", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewContributionRepository(db)
		now := time.Now()
		amount := decimal.RequireFromString("1000")
		projectID := int32(4)

		c := &domain.Contribution{MemberID: 7, Amount: amount, Type: domain.ContributionTypeProject, ProjectID: &projectID, RecordedBy: 2}
		tx := &domain.Transaction{MemberID: 7, Amount: amount, Method: domain.PaymentMethodMpesa, Reference: "SBC123", Status: domain.TransactionStatusCompleted}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contributions`).
			WithArgs(c.MemberID, amount, c.Type, &projectID, nil, c.Narrative, c.RecordedBy).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, now))
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(int32(12), tx.MemberID, amount, tx.Method, tx.Reference, tx.Status).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(22, now))
		mock.ExpectCommit()

		balance, err := repo.RecordPayment(ctx, c, tx)
		assert.NoError(t, err)
		assert.Nil(t, balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TransactionInsertFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewContributionRepository(db)
		now := time.Now()
		amount := decimal.RequireFromString("500")

		c := &domain.Contribution{MemberID: 7, Amount: amount, Type: domain.ContributionTypeMonthly, RecordedBy: 2}
		tx := &domain.Transaction{MemberID: 7, Amount: amount, Method: domain.PaymentMethodCash, Status: domain.TransactionStatusCompleted}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contributions`).
			WithArgs(c.MemberID, amount, c.Type, nil, nil, c.Narrative, c.RecordedBy).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(13, now))
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(int32(13), tx.MemberID, amount, tx.Method, tx.Reference, tx.Status).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		_, err = repo.RecordPayment(ctx, c, tx)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
