package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/guarantee"
)

type GuaranteeHandler struct {
	guarantees *guarantee.Service
}

func NewGuaranteeHandler(guarantees *guarantee.Service) *GuaranteeHandler {
	return &GuaranteeHandler{guarantees: guarantees}
}

type CreateGuaranteeRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpiryDate  time.Time       `json:"expiryDate"`
}

type UpdateGuaranteeRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpiryDate  *time.Time       `json:"expiryDate"`
}

func (h *GuaranteeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	guarantees, err := h.guarantees.GetAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if guarantees == nil {
		guarantees = []*guarantee.Guarantee{}
	}
	writeJSON(w, http.StatusOK, guarantees)
}

func (h *GuaranteeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateGuaranteeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.guarantees.Create(r.Context(), userID, guarantee.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *GuaranteeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	g, err := h.guarantees.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GuaranteeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateGuaranteeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.guarantees.Update(r.Context(), r.PathValue("id"), userID, guarantee.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GuaranteeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.guarantees.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
