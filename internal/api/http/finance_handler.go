package http

import (
	"net/http"
	"strings"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/service"
	"farmsight-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type FinanceHandler struct {
	finances service.FinanceService
	files    storage.FileStorage
	uploads  *uploadPolicy
}

func NewFinanceHandler(finances service.FinanceService, files storage.FileStorage, uploads *uploadPolicy) *FinanceHandler {
	return &FinanceHandler{finances: finances, files: files, uploads: uploads}
}

type recordTransactionRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Direction string          `json:"status"`
	Notes     string          `json:"notes"`
}

func (h *FinanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var in service.RecordTransactionInput
	if isMultipart(r) {
		in, err = h.recordInputFromForm(r)
	} else {
		var req recordTransactionRequest
		if err = decodeJSON(r, &req); err == nil {
			in = service.RecordTransactionInput{
				Amount:    req.Amount,
				Currency:  req.Currency,
				Direction: req.Direction,
				Notes:     req.Notes,
			}
		}
	}
	if err != nil {
		respondError(w, err)
		return
	}

	tx, err := h.finances.Record(r.Context(), userID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.withReceiptURL(*tx))
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	txs, err := h.finances.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]domain.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = h.withReceiptURL(tx)
	}
	respondJSON(w, http.StatusOK, out)
}

type updateTransactionRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Currency  *string          `json:"currency"`
	Direction *string          `json:"status"`
	Notes     *string          `json:"notes"`
}

func (h *FinanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	txID := mux.Vars(r)["id"]

	var in service.UpdateTransactionInput
	if isMultipart(r) {
		in, err = h.updateInputFromForm(r)
	} else {
		var req updateTransactionRequest
		if err = decodeJSON(r, &req); err == nil {
			in = service.UpdateTransactionInput{
				Amount:    req.Amount,
				Currency:  req.Currency,
				Direction: req.Direction,
				Notes:     req.Notes,
			}
		}
	}
	if err != nil {
		respondError(w, err)
		return
	}

	tx, err := h.finances.Update(r.Context(), userID, txID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.withReceiptURL(*tx))
}

func (h *FinanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.finances.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type recomputeResponse struct {
	Repaired int `json:"repaired"`
}

// Recompute replays the caller's ledger and fixes any totals that no
// longer add up, reporting how many rows changed.
func (h *FinanceHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	repaired, err := h.finances.Recompute(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recomputeResponse{Repaired: repaired})
}

func (h *FinanceHandler) recordInputFromForm(r *http.Request) (service.RecordTransactionInput, error) {
	var in service.RecordTransactionInput

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		return in, domain.NewValidationError("amount", "must be a decimal number")
	}
	in.Amount = amount
	in.Currency = r.FormValue("currency")
	in.Direction = r.FormValue("status")
	in.Notes = r.FormValue("notes")

	receipt, err := h.uploads.saveFormFile(r, "receipt_image")
	if err != nil {
		return in, err
	}
	in.ReceiptImage = receipt
	return in, nil
}

func (h *FinanceHandler) updateInputFromForm(r *http.Request) (service.UpdateTransactionInput, error) {
	var in service.UpdateTransactionInput

	if v := r.FormValue("amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return in, domain.NewValidationError("amount", "must be a decimal number")
		}
		in.Amount = &amount
	}
	if v := r.FormValue("currency"); v != "" {
		in.Currency = &v
	}
	if v := r.FormValue("status"); v != "" {
		in.Direction = &v
	}
	if _, ok := r.Form["notes"]; ok {
		v := r.FormValue("notes")
		in.Notes = &v
	}

	receipt, err := h.uploads.saveFormFile(r, "receipt_image")
	if err != nil {
		return in, err
	}
	if receipt != nil {
		in.ReceiptImage = receipt
	}
	return in, nil
}

// withReceiptURL swaps the stored file key for the URL clients fetch
// the receipt from.
func (h *FinanceHandler) withReceiptURL(tx domain.Transaction) domain.Transaction {
	if tx.ReceiptImage != nil {
		url := h.files.URL(*tx.ReceiptImage)
		tx.ReceiptImage = &url
	}
	return tx
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
