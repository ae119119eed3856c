package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	branchesapp "github.com/branchpos/backend/internal/application/branches"
	endofdayapp "github.com/branchpos/backend/internal/application/endofday"
	identityapp "github.com/branchpos/backend/internal/application/identity"
	posapp "github.com/branchpos/backend/internal/application/pos"
	workforceapp "github.com/branchpos/backend/internal/application/workforce"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/branchpos/backend/internal/infrastructure/auth"
	"github.com/branchpos/backend/internal/infrastructure/config"
	"github.com/branchpos/backend/internal/infrastructure/event"
	"github.com/branchpos/backend/internal/infrastructure/logger"
	"github.com/branchpos/backend/internal/infrastructure/persistence"
	"github.com/branchpos/backend/internal/interfaces/http/handler"
	"github.com/branchpos/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting branch POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	if cfg.App.Env != "production" {
		if err := persistence.SeedDevData(context.Background(), db); err != nil {
			log.Fatal("Failed to seed development data", zap.Error(err))
		}
	}

	// Repositories and archives
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	transactionArchive := persistence.NewGormTransactionArchive(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	timeEntryArchive := persistence.NewGormTimeEntryArchive(db.DB)
	payrollArchive := persistence.NewGormPayrollArchive(db.DB)
	inventoryStore := persistence.NewGormInventoryStore(db.DB)
	reportArchive := persistence.NewGormReportArchive(db.DB)
	operatorRepo := persistence.NewGormOperatorRepository(db.DB)

	eventBus := event.NewInMemoryEventBus(log)
	clock := shared.SystemClock{}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenExpiration, cfg.JWT.Issuer)

	// Application services
	taxRate := decimal.NewFromFloat(cfg.Sales.TaxRate)
	registers := posapp.NewRegisters(productRepo, cfg.Sales.ReceiptPrefix)
	scheduler := posapp.NewFulfillmentScheduler(cfg.Sales.FulfillmentDelay)
	defer scheduler.Stop()

	cartService := posapp.NewCartService(registers, taxRate)
	transactionService := posapp.NewTransactionService(registers, transactionArchive, eventBus, scheduler, clock, taxRate)

	timeClockService := workforceapp.NewTimeClockService(employeeRepo, timeEntryArchive, eventBus, clock)
	payrollService := workforceapp.NewPayrollService(timeClockService, payrollArchive, eventBus, clock, workforce.PayrollRates{
		OvertimeMultiplier: decimal.NewFromFloat(cfg.Payroll.OvertimeMultiplier),
		TaxRate:            decimal.NewFromFloat(cfg.Payroll.TaxRate),
	})

	reconcilerService := endofdayapp.NewReconcilerService(
		inventoryStore,
		transactionService,
		reportArchive,
		eventBus,
		clock,
		decimal.NewFromFloat(cfg.EndOfDay.OpeningFloat),
		decimal.NewFromFloat(cfg.EndOfDay.CashTolerance),
	)

	authService := identityapp.NewAuthService(operatorRepo, jwtService)
	branchService := branchesapp.NewService(branchRepo, eventBus)

	engine := router.Setup(cfg, log, jwtService, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Branch:      handler.NewBranchHandler(branchService),
		POS:         handler.NewPOSHandler(cartService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Workforce:   handler.NewWorkforceHandler(timeClockService, payrollService),
		EndOfDay:    handler.NewEndOfDayHandler(reconcilerService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
