package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/domain/transaction"
	"soldo/internal/shared/apperror"
)

type TransactionHandler struct {
	transactions *transaction.Service
}

func NewTransactionHandler(transactions *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// CreateTransactionRequest takes amount as a pointer so a body that
// omits it is rejected instead of defaulting to 0.
type CreateTransactionRequest struct {
	AccountID   string           `json:"accountId"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        time.Time        `json:"date"`
	Tags        []string         `json:"tags"`
	IsRecurring bool             `json:"isRecurring"`
	Frequency   *string          `json:"frequency"`
	EndDate     *time.Time       `json:"endDate"`
}

type UpdateTransactionRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Tags        *[]string        `json:"tags"`
	IsRecurring *bool            `json:"isRecurring"`
	Frequency   *string          `json:"frequency"`
	EndDate     *time.Time       `json:"endDate"`
}

func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	txns, err := h.transactions.GetAll(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if txns == nil {
		txns = []*transaction.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	txn, err := h.transactions.Create(r.Context(), userID, transaction.CreateParams{
		AccountID:   req.AccountID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Tags:        req.Tags,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	txn, err := h.transactions.Update(r.Context(), r.PathValue("id"), userID, transaction.UpdateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Tags:        req.Tags,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.transactions.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStatistics aggregates the user's transactions over an optional
// date range.
func (h *TransactionHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		writeError(w, r, err)
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.transactions.GetStatistics(r.Context(), userID, startDate, endDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// parseFilter reads the optional query predicates. All present predicates
// combine with AND; tags is comma-separated and matches on intersection.
func parseFilter(r *http.Request) (transaction.Filter, error) {
	var filter transaction.Filter
	q := r.URL.Query()

	filter.AccountID = q.Get("accountId")

	var err error
	if filter.StartDate, err = parseDateParam(r, "startDate"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDateParam(r, "endDate"); err != nil {
		return filter, err
	}

	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	if raw := q.Get("isRecurring"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperror.Validation("Validation failed",
				apperror.FieldError{Field: "isRecurring", Message: "isRecurring must be true or false"})
		}
		filter.IsRecurring = &v
	}

	if filter.MinAmount, err = parseDecimalParam(r, "minAmount"); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = parseDecimalParam(r, "maxAmount"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, apperror.Validation("Validation failed",
		apperror.FieldError{Field: name, Message: name + " must be an RFC 3339 timestamp or YYYY-MM-DD date"})
}

func parseDecimalParam(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Validation("Validation failed",
			apperror.FieldError{Field: name, Message: name + " must be a number"})
	}
	return &d, nil
}
