package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/debt"
)

type DebtHandler struct {
	debts *debt.Service
}

func NewDebtHandler(debts *debt.Service) *DebtHandler {
	return &DebtHandler{debts: debts}
}

type CreateDebtRequest struct {
	Name         string          `json:"name"`
	Lender       string          `json:"lender"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"`
	StartDate    *time.Time      `json:"startDate"`
	DueDate      time.Time       `json:"dueDate"`
}

type UpdateDebtRequest struct {
	Name         *string          `json:"name"`
	Lender       *string          `json:"lender"`
	Principal    *decimal.Decimal `json:"principal"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	StartDate    *time.Time       `json:"startDate"`
	DueDate      *time.Time       `json:"dueDate"`
}

type CreatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

func (h *DebtHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	debts, err := h.debts.GetAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if debts == nil {
		debts = []*debt.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *DebtHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateDebtRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d, err := h.debts.Create(r.Context(), userID, debt.CreateParams{
		Name:         req.Name,
		Lender:       req.Lender,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DebtHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	d, err := h.debts.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateDebtRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d, err := h.debts.Update(r.Context(), r.PathValue("id"), userID, debt.UpdateParams{
		Name:         req.Name,
		Lender:       req.Lender,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.debts.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddPayment appends a payment to a debt the user owns.
func (h *DebtHandler) HandleAddPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.debts.AddPayment(r.Context(), r.PathValue("id"), userID, debt.CreatePaymentParams{
		Amount: req.Amount,
		Date:   req.Date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
