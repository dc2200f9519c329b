package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/account"
	"soldo/internal/domain/transaction"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc    func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	FindOwnedFunc func(ctx context.Context, id, userID string) (*transaction.Transaction, error)
	ListFunc      func(ctx context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error)
	UpdateFunc    func(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc    func(ctx context.Context, id string) error
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	tx := &transaction.Transaction{ID: "t-1", AccountID: params.AccountID, Description: params.Description, Date: params.Date, Tags: params.Tags}
	if params.Amount != nil {
		tx.Amount = *params.Amount
	}
	return tx, nil
}

func (m *MockTransactionRepo) FindOwned(ctx context.Context, id, userID string) (*transaction.Transaction, error) {
	if m.FindOwnedFunc != nil {
		return m.FindOwnedFunc(ctx, id, userID)
	}
	return nil, transaction.ErrNotFound
}

func (m *MockTransactionRepo) List(ctx context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, transaction.ErrNotFound
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return transaction.ErrNotFound
}

// ownedAccounts resolves account ownership from a fixed map.
type ownedAccounts struct {
	ownerByAccount map[string]string
}

func (o *ownedAccounts) GetByID(ctx context.Context, id, userID string) (*account.Account, error) {
	if o.ownerByAccount[id] == userID {
		return &account.Account{ID: id, UserID: userID}, nil
	}
	return nil, account.ErrNotFound
}

func newTransactionHandler(repo *MockTransactionRepo, owners map[string]string) *TransactionHandler {
	return NewTransactionHandler(transaction.NewService(repo, &ownedAccounts{ownerByAccount: owners}))
}

func amountOf(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func TestHandleCreateTransaction(t *testing.T) {
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		h := newTransactionHandler(&MockTransactionRepo{}, map[string]string{"a-1": "u-1"})

		body, _ := json.Marshal(CreateTransactionRequest{
			AccountID:   "a-1",
			Description: "Groceries",
			Amount:      amountOf(-80),
			Date:        date,
			Tags:        []string{"food"},
		})
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, authedRequest(http.MethodPost, "/api/transactions", body, "u-1"))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("MissingAmountRejected", func(t *testing.T) {
		created := false
		repo := &MockTransactionRepo{
			CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
				created = true
				return nil, nil
			},
		}
		h := newTransactionHandler(repo, map[string]string{"a-1": "u-1"})

		body := []byte(`{"accountId":"a-1","description":"Groceries","date":"2026-08-01T00:00:00Z"}`)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, authedRequest(http.MethodPost, "/api/transactions", body, "u-1"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		found := false
		for _, f := range resp.Details {
			if f.Field == "amount" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a field error for amount, got %+v", resp.Details)
		}
		if created {
			t.Error("transaction must not be written without an amount")
		}
	})

	t.Run("ForeignAccountRejected", func(t *testing.T) {
		created := false
		repo := &MockTransactionRepo{
			CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
				created = true
				return nil, nil
			},
		}
		h := newTransactionHandler(repo, map[string]string{"a-1": "someone-else"})

		body, _ := json.Marshal(CreateTransactionRequest{
			AccountID:   "a-1",
			Description: "Groceries",
			Amount:      amountOf(-80),
			Date:        date,
		})
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, authedRequest(http.MethodPost, "/api/transactions", body, "u-1"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if created {
			t.Error("transaction must not be written for a foreign account")
		}
	})
}

func TestHandleUpdateTransaction_ZeroValuesPersist(t *testing.T) {
	var got transaction.UpdateParams
	repo := &MockTransactionRepo{
		FindOwnedFunc: func(ctx context.Context, id, userID string) (*transaction.Transaction, error) {
			return &transaction.Transaction{ID: id, AccountID: "a-1"}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
			got = params
			return &transaction.Transaction{ID: id, AccountID: "a-1"}, nil
		},
	}
	h := newTransactionHandler(repo, map[string]string{"a-1": "u-1"})

	req := authedRequest(http.MethodPut, "/api/transactions/t-1", []byte(`{"amount":0,"isRecurring":false}`), "u-1")
	req.SetPathValue("id", "t-1")
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if got.Amount == nil || !got.Amount.IsZero() {
		t.Errorf("explicit zero amount should persist, got %v", got.Amount)
	}
	if got.IsRecurring == nil || *got.IsRecurring {
		t.Errorf("explicit false isRecurring should persist, got %v", got.IsRecurring)
	}
	if got.Description != nil {
		t.Errorf("omitted description should stay unset, got %v", *got.Description)
	}
}

func TestHandleListTransactions_FilterParsing(t *testing.T) {
	var got transaction.Filter
	repo := &MockTransactionRepo{
		ListFunc: func(ctx context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error) {
			got = filter
			return nil, nil
		},
	}
	h := newTransactionHandler(repo, nil)

	path := "/api/transactions?accountId=a-1&startDate=2026-01-01&endDate=2026-06-30&tags=food,%20rent&isRecurring=true&minAmount=-100&maxAmount=250.50"
	rec := httptest.NewRecorder()
	h.HandleList(rec, authedRequest(http.MethodGet, path, nil, "u-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if got.AccountID != "a-1" {
		t.Errorf("accountId = %q", got.AccountID)
	}
	if got.StartDate == nil || !got.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("startDate = %v", got.StartDate)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "food" || got.Tags[1] != "rent" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.IsRecurring == nil || !*got.IsRecurring {
		t.Errorf("isRecurring = %v", got.IsRecurring)
	}
	if got.MinAmount == nil || !got.MinAmount.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("minAmount = %v", got.MinAmount)
	}
	if got.MaxAmount == nil || !got.MaxAmount.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("maxAmount = %v", got.MaxAmount)
	}

	// Responses are JSON arrays even when nothing matches.
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array body, got %q", body)
	}
}

func TestHandleListTransactions_BadDate(t *testing.T) {
	h := newTransactionHandler(&MockTransactionRepo{}, nil)

	rec := httptest.NewRecorder()
	h.HandleList(rec, authedRequest(http.MethodGet, "/api/transactions?startDate=yesterday", nil, "u-1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleStatistics(t *testing.T) {
	repo := &MockTransactionRepo{
		ListFunc: func(ctx context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error) {
			return []*transaction.Transaction{
				{ID: "t-1", Amount: decimal.NewFromInt(100)},
				{ID: "t-2", Amount: decimal.NewFromInt(-40)},
			}, nil
		},
	}
	h := newTransactionHandler(repo, nil)

	rec := httptest.NewRecorder()
	h.HandleStatistics(rec, authedRequest(http.MethodGet, "/api/transactions/statistics", nil, "u-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stats transaction.Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !stats.TotalIncome.Equal(decimal.NewFromInt(100)) {
		t.Errorf("totalIncome = %s", stats.TotalIncome)
	}
	if !stats.TotalExpenses.Equal(decimal.NewFromInt(40)) {
		t.Errorf("totalExpenses = %s", stats.TotalExpenses)
	}
	if stats.TransactionCount != 2 {
		t.Errorf("transactionCount = %d", stats.TransactionCount)
	}
}
