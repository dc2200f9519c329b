package guarantee

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soldo/internal/shared/apperror"
)

type MockRepository struct {
	CreateFunc       func(ctx context.Context, userID string, params CreateParams) (*Guarantee, error)
	GetByIDFunc      func(ctx context.Context, id, userID string) (*Guarantee, error)
	ListByUserIDFunc func(ctx context.Context, userID string) ([]*Guarantee, error)
	UpdateFunc       func(ctx context.Context, id, userID string, params UpdateParams) (*Guarantee, error)
	DeleteFunc       func(ctx context.Context, id, userID string) error
}

func (m *MockRepository) Create(ctx context.Context, userID string, params CreateParams) (*Guarantee, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return &Guarantee{ID: "g-1", UserID: userID, Name: params.Name, Amount: params.Amount, ExpiryDate: params.ExpiryDate}, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id, userID string) (*Guarantee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID string) ([]*Guarantee, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id, userID string, params UpdateParams) (*Guarantee, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, userID, params)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) Delete(ctx context.Context, id, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return ErrNotFound
}

func expiry() time.Time { return time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC) }

func TestCreateGuarantee(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	t.Run("Success", func(t *testing.T) {
		g, err := svc.Create(ctx, "u-1", CreateParams{
			Name:       "Laptop warranty",
			Amount:     decimal.NewFromInt(1500),
			ExpiryDate: expiry(),
		})
		require.NoError(t, err)
		assert.Equal(t, "u-1", g.UserID)
	})

	t.Run("ZeroAmountAllowed", func(t *testing.T) {
		_, err := svc.Create(ctx, "u-1", CreateParams{
			Name:       "Free extended warranty",
			Amount:     decimal.Zero,
			ExpiryDate: expiry(),
		})
		assert.NoError(t, err)
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name      string
			params    CreateParams
			wantField string
		}{
			{"missing name", CreateParams{Amount: decimal.NewFromInt(1), ExpiryDate: expiry()}, "name"},
			{"negative amount", CreateParams{Name: "x", Amount: decimal.NewFromInt(-5), ExpiryDate: expiry()}, "amount"},
			{"missing expiry", CreateParams{Name: "x", Amount: decimal.NewFromInt(1)}, "expiryDate"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(ctx, "u-1", tt.params)
				appErr, ok := apperror.From(err)
				require.True(t, ok, "expected taxonomy error, got %v", err)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)

				fields := make([]string, 0, len(appErr.Fields))
				for _, f := range appErr.Fields {
					fields = append(fields, f.Field)
				}
				assert.Contains(t, fields, tt.wantField)
			})
		}
	})
}

func TestGetGuarantee_NotOwned(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	_, err := svc.Get(ctx, "g-1", "intruder")
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestUpdateGuarantee(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialPatch", func(t *testing.T) {
		var got UpdateParams
		repo := &MockRepository{
			UpdateFunc: func(ctx context.Context, id, userID string, params UpdateParams) (*Guarantee, error) {
				got = params
				return &Guarantee{ID: id, UserID: userID}, nil
			},
		}
		svc := NewService(repo)

		name := "Renamed"
		_, err := svc.Update(ctx, "g-1", "u-1", UpdateParams{Name: &name})
		require.NoError(t, err)
		require.NotNil(t, got.Name)
		assert.Equal(t, "Renamed", *got.Name)
		assert.Nil(t, got.Amount)
		assert.Nil(t, got.ExpiryDate)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		svc := NewService(&MockRepository{})

		empty := "  "
		_, err := svc.Update(ctx, "g-1", "u-1", UpdateParams{Name: &empty})
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})
}

func TestDeleteGuarantee_NotOwned(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	err := svc.Delete(ctx, "g-1", "intruder")
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}
