package transaction

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/account"
	"soldo/internal/shared/apperror"
)

type MockRepository struct {
	CreateFunc    func(ctx context.Context, params CreateParams) (*Transaction, error)
	FindOwnedFunc func(ctx context.Context, id, userID string) (*Transaction, error)
	ListFunc      func(ctx context.Context, userID string, filter Filter) ([]*Transaction, error)
	UpdateFunc    func(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	DeleteFunc    func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	tx := &Transaction{ID: "tx-new", AccountID: params.AccountID, Tags: params.Tags}
	if params.Amount != nil {
		tx.Amount = *params.Amount
	}
	return tx, nil
}

func (m *MockRepository) FindOwned(ctx context.Context, id, userID string) (*Transaction, error) {
	if m.FindOwnedFunc != nil {
		return m.FindOwnedFunc(ctx, id, userID)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) List(ctx context.Context, userID string, filter Filter) ([]*Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAccounts resolves accounts owned by a single user.
type MockAccounts struct {
	OwnerByAccount map[string]string
}

func (m *MockAccounts) GetByID(ctx context.Context, id, userID string) (*account.Account, error) {
	if owner, ok := m.OwnerByAccount[id]; ok && owner == userID {
		return &account.Account{ID: id, UserID: userID}, nil
	}
	return nil, account.ErrNotFound
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	accounts := &MockAccounts{OwnerByAccount: map[string]string{"acc-1": "u-1"}}

	t.Run("Success", func(t *testing.T) {
		svc := NewService(&MockRepository{}, accounts)

		tx, err := svc.Create(ctx, "u-1", CreateParams{
			AccountID:   "acc-1",
			Description: "Groceries",
			Amount:      decPtr("-50"),
			Date:        date("2025-11-20"),
			Tags:        []string{" food ", "<script>bad</script>"},
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		want := []string{"food", "scriptbad/script"}
		if !reflect.DeepEqual(tx.Tags, want) {
			t.Errorf("tags = %v, want %v", tx.Tags, want)
		}
	})

	t.Run("ForeignAccountRejectedBeforeWrite", func(t *testing.T) {
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Transaction, error) {
				t.Error("Create reached the repository for a foreign account")
				return nil, nil
			},
		}
		svc := NewService(repo, accounts)

		_, err := svc.Create(ctx, "u-2", CreateParams{
			AccountID:   "acc-1",
			Description: "x",
			Amount:      decPtr("-50"),
			Date:        date("2025-11-20"),
		})
		appErr, ok := apperror.From(err)
		if !ok || appErr.Code != apperror.CodeNotFound {
			t.Fatalf("foreign account: got %v, want NotFound", err)
		}
		if appErr.Message != "Account not found or unauthorized" {
			t.Errorf("message = %q", appErr.Message)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(&MockRepository{}, accounts)

		_, err := svc.Create(ctx, "u-1", CreateParams{AccountID: "acc-1"})
		if !apperror.IsCode(err, apperror.CodeValidation) {
			t.Errorf("missing fields: got %v, want ValidationFailed", err)
		}
	})

	t.Run("MissingAmountRejected", func(t *testing.T) {
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Transaction, error) {
				t.Error("Create reached the repository without an amount")
				return nil, nil
			},
		}
		svc := NewService(repo, accounts)

		_, err := svc.Create(ctx, "u-1", CreateParams{
			AccountID:   "acc-1",
			Description: "Groceries",
			Date:        date("2025-11-20"),
		})
		appErr, ok := apperror.From(err)
		if !ok || appErr.Code != apperror.CodeValidation {
			t.Fatalf("missing amount: got %v, want ValidationFailed", err)
		}
		found := false
		for _, f := range appErr.Fields {
			if f.Field == "amount" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected an amount field error, got %v", appErr.Fields)
		}
	})

	t.Run("ZeroAmountAllowed", func(t *testing.T) {
		svc := NewService(&MockRepository{}, accounts)

		if _, err := svc.Create(ctx, "u-1", CreateParams{
			AccountID:   "acc-1",
			Description: "free sample",
			Amount:      decPtr("0"),
			Date:        date("2025-11-20"),
		}); err != nil {
			t.Errorf("zero amount rejected: %v", err)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	accounts := &MockAccounts{OwnerByAccount: map[string]string{"acc-1": "u-1"}}
	owned := &Transaction{ID: "tx-1", AccountID: "acc-1", Amount: dec("10"), IsRecurring: true}

	t.Run("ZeroValuesPersist", func(t *testing.T) {
		var got UpdateParams
		repo := &MockRepository{
			FindOwnedFunc: func(ctx context.Context, id, userID string) (*Transaction, error) {
				if userID == "u-1" {
					return owned, nil
				}
				return nil, ErrNotFound
			},
			UpdateFunc: func(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
				got = params
				return owned, nil
			},
		}
		svc := NewService(repo, accounts)

		zero := decimal.Zero
		recurring := false
		_, err := svc.Update(ctx, "tx-1", "u-1", UpdateParams{Amount: &zero, IsRecurring: &recurring})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		// amount: 0 and isRecurring: false are supplied values, not absence.
		if got.Amount == nil || !got.Amount.Equal(decimal.Zero) {
			t.Error("amount=0 was dropped from the patch")
		}
		if got.IsRecurring == nil || *got.IsRecurring != false {
			t.Error("isRecurring=false was dropped from the patch")
		}
		if got.Description != nil {
			t.Error("omitted description appeared in the patch")
		}
	})

	t.Run("NotOwned", func(t *testing.T) {
		repo := &MockRepository{}
		svc := NewService(repo, accounts)

		amount := dec("5")
		_, err := svc.Update(ctx, "tx-1", "u-2", UpdateParams{Amount: &amount})
		appErr, ok := apperror.From(err)
		if !ok || appErr.Code != apperror.CodeNotFound {
			t.Fatalf("foreign update: got %v, want NotFound", err)
		}
		if appErr.Message != "Transaction not found" {
			t.Errorf("message = %q", appErr.Message)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	accounts := &MockAccounts{OwnerByAccount: map[string]string{"acc-1": "u-1"}}

	t.Run("Success", func(t *testing.T) {
		deleted := false
		repo := &MockRepository{
			FindOwnedFunc: func(ctx context.Context, id, userID string) (*Transaction, error) {
				return &Transaction{ID: id, AccountID: "acc-1"}, nil
			},
			DeleteFunc: func(ctx context.Context, id string) error {
				deleted = true
				return nil
			},
		}
		if err := NewService(repo, accounts).Delete(ctx, "tx-1", "u-1"); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		if !deleted {
			t.Error("repository delete not called")
		}
	})

	t.Run("NotOwned", func(t *testing.T) {
		err := NewService(&MockRepository{}, accounts).Delete(ctx, "tx-1", "u-2")
		if !apperror.IsCode(err, apperror.CodeNotFound) {
			t.Errorf("foreign delete: got %v, want NotFound", err)
		}
	})
}

func TestGetStatistics(t *testing.T) {
	ctx := context.Background()
	accounts := &MockAccounts{}

	t.Run("PassesDateRange", func(t *testing.T) {
		start, end := date("2025-01-01"), date("2025-12-31")
		repo := &MockRepository{
			ListFunc: func(ctx context.Context, userID string, filter Filter) ([]*Transaction, error) {
				if filter.StartDate == nil || !filter.StartDate.Equal(start) {
					t.Error("startDate not forwarded to the repository")
				}
				if filter.EndDate == nil || !filter.EndDate.Equal(end) {
					t.Error("endDate not forwarded to the repository")
				}
				return []*Transaction{
					{Amount: dec("100")},
					{Amount: dec("-40")},
					{Amount: dec("-20")},
				}, nil
			},
		}
		svc := NewService(repo, accounts)

		stats, err := svc.GetStatistics(ctx, "u-1", &start, &end)
		if err != nil {
			t.Fatalf("GetStatistics() failed: %v", err)
		}
		if !stats.TotalIncome.Equal(dec("100")) {
			t.Errorf("totalIncome = %s, want 100", stats.TotalIncome)
		}
		if !stats.TotalExpenses.Equal(dec("60")) {
			t.Errorf("totalExpenses = %s, want 60", stats.TotalExpenses)
		}
		if !stats.Balance.Equal(dec("40")) {
			t.Errorf("balance = %s, want 40", stats.Balance)
		}
	})

	t.Run("EmptySet", func(t *testing.T) {
		svc := NewService(&MockRepository{}, accounts)

		stats, err := svc.GetStatistics(ctx, "u-1", nil, nil)
		if err != nil {
			t.Fatalf("GetStatistics() failed: %v", err)
		}
		for name, got := range map[string]decimal.Decimal{
			"totalIncome":        stats.TotalIncome,
			"totalExpenses":      stats.TotalExpenses,
			"balance":            stats.Balance,
			"averageTransaction": stats.AverageTransaction,
		} {
			if !got.IsZero() {
				t.Errorf("%s = %s, want 0", name, got)
			}
		}
		if stats.TransactionCount != 0 {
			t.Errorf("transactionCount = %d, want 0", stats.TransactionCount)
		}
	})
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name        string
		amounts     []string
		wantIncome  string
		wantExpense string
		wantBalance string
		wantAvg     string
	}{
		{"mixed", []string{"100", "-40", "-20"}, "100", "60", "40", "13.3333"},
		{"income only", []string{"10", "20"}, "30", "0", "30", "15"},
		{"expenses only", []string{"-10", "-20"}, "0", "30", "-30", "-15"},
		{"zero amounts ignored by both sums", []string{"0", "10"}, "10", "0", "10", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := make([]*Transaction, 0, len(tt.amounts))
			for _, a := range tt.amounts {
				txs = append(txs, &Transaction{Amount: dec(a)})
			}
			stats := ComputeStatistics(txs)

			if !stats.TotalIncome.Equal(dec(tt.wantIncome)) {
				t.Errorf("totalIncome = %s, want %s", stats.TotalIncome, tt.wantIncome)
			}
			if !stats.TotalExpenses.Equal(dec(tt.wantExpense)) {
				t.Errorf("totalExpenses = %s, want %s", stats.TotalExpenses, tt.wantExpense)
			}
			if !stats.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", stats.Balance, tt.wantBalance)
			}
			if !stats.AverageTransaction.Equal(dec(tt.wantAvg)) {
				t.Errorf("averageTransaction = %s, want %s", stats.AverageTransaction, tt.wantAvg)
			}
			if stats.TransactionCount != len(tt.amounts) {
				t.Errorf("transactionCount = %d, want %d", stats.TransactionCount, len(tt.amounts))
			}
		})
	}
}

func TestSanitizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays empty", nil, []string{}},
		{"trims whitespace", []string{"  food  "}, []string{"food"}},
		{"strips angle brackets", []string{"<b>rent</b>"}, []string{"brent/b"}},
		{"drops empties", []string{"", "  ", "<>"}, []string{}},
		{"keeps duplicates verbatim", []string{"a", "a"}, []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
