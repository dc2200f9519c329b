package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/account"
)

type AccountHandler struct {
	accounts *account.Service
}

func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type CreateAccountRequest struct {
	Name           string          `json:"name"`
	StartingAmount decimal.Decimal `json:"startingAmount"`
}

type UpdateAccountRequest struct {
	Name           *string          `json:"name"`
	StartingAmount *decimal.Decimal `json:"startingAmount"`
}

func (h *AccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summaries, err := h.accounts.GetAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []*account.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *AccountHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	acc, err := h.accounts.Create(r.Context(), userID, account.CreateParams{
		Name:           req.Name,
		StartingAmount: req.StartingAmount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	detail, err := h.accounts.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *AccountHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	acc, err := h.accounts.Update(r.Context(), r.PathValue("id"), userID, account.UpdateParams{
		Name:           req.Name,
		StartingAmount: req.StartingAmount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
