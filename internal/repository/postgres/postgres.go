package postgres

import (
	"database/sql"

	"welfare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.BalanceRepository
	repository.ContributionRepository
	repository.ProjectRepository
	repository.WelfareCaseRepository
	repository.ExpenditureRepository
	repository.DisbursementRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		MemberRepository:       NewMemberRepository(db),
		BalanceRepository:      NewBalanceRepository(db),
		ContributionRepository: NewContributionRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		WelfareCaseRepository:  NewWelfareCaseRepository(db),
		ExpenditureRepository:  NewExpenditureRepository(db),
		DisbursementRepository: NewDisbursementRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}
