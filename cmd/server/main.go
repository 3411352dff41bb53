package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "welfare-backend/internal/api/http"
	"welfare-backend/internal/config"
	"welfare-backend/internal/logger"
	"welfare-backend/internal/mpesa"
	"welfare-backend/internal/repository/postgres"
	"welfare-backend/internal/security"
	"welfare-backend/internal/service"
	"welfare-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Welfare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage
	var (
		storageSvc  storage.Storage
		mockStorage *storage.MockStorage
	)
	switch cfg.Storage.Type {
	case "", "mock":
		logger.Info("Using mock storage (local filesystem)", "dir", cfg.Storage.Dir)
		mockStorage, err = storage.NewMockStorage(cfg.Storage.BaseURL, cfg.Storage.Dir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageSvc = mockStorage
	case "supabase":
		logger.Info("Using Supabase storage", "bucket", cfg.Storage.Bucket)
		storageSvc = storage.NewSupabaseStorage(cfg.Storage.BaseURL, cfg.Storage.APIKey, cfg.Storage.Bucket)
	default:
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not supported", cfg.Storage.Type)
	}

	// Initialize M-Pesa gateway client
	mpesaClient := mpesa.NewClient(mpesa.Config{
		BaseURL:        cfg.Mpesa.BaseURL,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		ShortCode:      cfg.Mpesa.ShortCode,
		Passkey:        cfg.Mpesa.Passkey,
		CallbackURL:    cfg.Mpesa.CallbackURL,
	})

	// Initialize notification services
	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	smsSvc := service.NewSMSService(service.SMSConfig{
		BaseURL:  cfg.SMS.BaseURL,
		Username: cfg.SMS.Username,
		APIKey:   cfg.SMS.APIKey,
		SenderID: cfg.SMS.SenderID,
	})

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	memberSvc := service.NewMemberService(
		store.MemberRepository,
		store.BalanceRepository,
		store.ContributionRepository,
		emailSvc,
		storageSvc,
		cfg.Membership.ProbationMonths,
	)
	ledgerSvc := service.NewLedgerService(store.BalanceRepository)
	paymentSvc := service.NewPaymentService(store.ContributionRepository, store.MemberRepository, mpesaClient, smsSvc)
	maturitySvc := service.NewMaturityService(store.MemberRepository)
	projectSvc := service.NewProjectService(store.ProjectRepository, store.WelfareCaseRepository, store.MemberRepository)
	expenditureSvc := service.NewExpenditureService(store.ExpenditureRepository)
	disbursementSvc := service.NewDisbursementService(
		store.DisbursementRepository,
		store.WelfareCaseRepository,
		store.MemberRepository,
		emailSvc,
	)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Member:       httpapi.NewMemberHandler(memberSvc, maturitySvc),
		Payment:      httpapi.NewPaymentHandler(paymentSvc, ledgerSvc),
		Project:      httpapi.NewProjectHandler(projectSvc),
		Expenditure:  httpapi.NewExpenditureHandler(expenditureSvc),
		Disbursement: httpapi.NewDisbursementHandler(disbursementSvc),
	}
	if mockStorage != nil {
		handlers.File = httpapi.NewFileHandler(mockStorage)
	}

	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
