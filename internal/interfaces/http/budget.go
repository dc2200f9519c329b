package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/budget"
)

type BudgetHandler struct {
	budgets *budget.Service
}

func NewBudgetHandler(budgets *budget.Service) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

type CreateBudgetRequest struct {
	Name      string          `json:"name"`
	Limit     decimal.Decimal `json:"limit"`
	Tag       string          `json:"tag"`
	StartDate *time.Time      `json:"startDate"`
	EndDate   *time.Time      `json:"endDate"`
}

type UpdateBudgetRequest struct {
	Name      *string          `json:"name"`
	Limit     *decimal.Decimal `json:"limit"`
	Tag       *string          `json:"tag"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
}

func (h *BudgetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgets.GetAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if budgets == nil {
		budgets = []*budget.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (h *BudgetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.budgets.Create(r.Context(), userID, budget.CreateParams{
		Name:      req.Name,
		Limit:     req.Limit,
		Tag:       req.Tag,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BudgetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	b, err := h.budgets.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.budgets.Update(r.Context(), r.PathValue("id"), userID, budget.UpdateParams{
		Name:      req.Name,
		Limit:     req.Limit,
		Tag:       req.Tag,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.budgets.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
