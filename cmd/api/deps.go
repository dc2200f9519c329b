package main

import (
	"log"

	"soldo/internal/domain/account"
	"soldo/internal/domain/budget"
	"soldo/internal/domain/debt"
	"soldo/internal/domain/guarantee"
	"soldo/internal/domain/transaction"
	"soldo/internal/domain/user"
	"soldo/internal/infrastructure/postgres"
	httphandlers "soldo/internal/interfaces/http"
	"soldo/internal/shared/auth"
	"soldo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	AccountHandler     *httphandlers.AccountHandler
	TransactionHandler *httphandlers.TransactionHandler
	BudgetHandler      *httphandlers.BudgetHandler
	DebtHandler        *httphandlers.DebtHandler
	GuaranteeHandler   *httphandlers.GuaranteeHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	guaranteeRepo := postgres.NewGuaranteeRepository(db)

	// Auth
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Domain services
	userService := user.NewService(userRepo, jwt)
	accountService := account.NewService(accountRepo)
	transactionService := transaction.NewService(transactionRepo, accountRepo)
	budgetService := budget.NewService(budgetRepo)
	debtService := debt.NewService(debtRepo)
	guaranteeService := guarantee.NewService(guaranteeRepo)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userService),
		UserHandler:        httphandlers.NewUserHandler(userService),
		AccountHandler:     httphandlers.NewAccountHandler(accountService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService),
		BudgetHandler:      httphandlers.NewBudgetHandler(budgetService),
		DebtHandler:        httphandlers.NewDebtHandler(debtService),
		GuaranteeHandler:   httphandlers.NewGuaranteeHandler(guaranteeService),
		JWT:                jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
