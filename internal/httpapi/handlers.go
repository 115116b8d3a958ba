package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookline-dev/bookline/internal/dedupe"
	"github.com/bookline-dev/bookline/internal/journal"
	"github.com/bookline-dev/bookline/internal/ledger"
	"github.com/bookline-dev/bookline/internal/model"
	"github.com/bookline-dev/bookline/internal/report"
)

// Handler carries the shared dependencies for all API endpoints.
type Handler struct {
	stores *Stores
	logger *slog.Logger
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

type accountResponse struct {
	ID       string          `json:"id"`
	Number   string          `json:"number,omitempty"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Subtype  string          `json:"subtype,omitempty"`
	ParentID string          `json:"parentId,omitempty"`
	Active   bool            `json:"active"`
	Balance  decimal.Decimal `json:"balance"`
	Level    int             `json:"level"`
	Path     []string        `json:"path,omitempty"`
}

func toAccountResponse(a model.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Number:   a.Number,
		Name:     a.Name,
		Type:     string(a.Type),
		Subtype:  a.Subtype,
		ParentID: a.ParentID,
		Active:   a.Active,
		Balance:  a.Balance,
	}
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accts := h.stores.Accounts().Active()
	out := make([]accountResponse, 0, len(accts))
	for _, a := range accts {
		out = append(out, toAccountResponse(a))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) accountTree(w http.ResponseWriter, r *http.Request) {
	flat, err := h.stores.Accounts().Flatten()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]accountResponse, 0, len(flat))
	for _, node := range flat {
		resp := toAccountResponse(node.Entity)
		resp.Level = node.Level
		resp.Path = node.Path
		out = append(out, resp)
	}
	h.writeJSON(w, http.StatusOK, out)
}

type contactResponse struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Eligible1099 bool     `json:"eligible1099"`
	ParentID     string   `json:"parentId,omitempty"`
	Role         string   `json:"role"`
	Level        int      `json:"level"`
	Path         []string `json:"path,omitempty"`
}

func toContactResponse(c model.Contact) contactResponse {
	return contactResponse{
		ID:           c.ID,
		Type:         string(c.Type),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Eligible1099: c.Eligible1099,
		ParentID:     c.ParentID,
		Role:         string(c.Role),
		Level:        c.Level,
	}
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	cts := h.stores.Contacts().Active()
	out := make([]contactResponse, 0, len(cts))
	for _, c := range cts {
		out = append(out, toContactResponse(c))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) contactTree(w http.ResponseWriter, r *http.Request) {
	flat, err := h.stores.Contacts().Flatten()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]contactResponse, 0, len(flat))
	for _, node := range flat {
		resp := toContactResponse(node.Entity)
		resp.Level = node.Level
		resp.Path = node.Path
		out = append(out, resp)
	}
	h.writeJSON(w, http.StatusOK, out)
}

type duplicateCheckRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type duplicateMatchResponse struct {
	Contact        contactResponse `json:"contact"`
	Score          float64         `json:"score"`
	MatchingFields []string        `json:"matchingFields"`
}

type duplicateCheckResponse struct {
	IsDuplicate bool                     `json:"isDuplicate"`
	Matches     []duplicateMatchResponse `json:"matches"`
}

func (h *Handler) duplicateCheck(w http.ResponseWriter, r *http.Request) {
	var req duplicateCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.stores.Contacts().CheckDuplicate(dedupe.Candidate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})

	out := duplicateCheckResponse{
		IsDuplicate: res.IsDuplicate,
		Matches:     make([]duplicateMatchResponse, 0, len(res.Matches)),
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, duplicateMatchResponse{
			Contact:        toContactResponse(m.Contact),
			Score:          m.Score,
			MatchingFields: m.MatchingFields,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

type lineItemRequest struct {
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

type validateRequest struct {
	Lines               []lineItemRequest `json:"lines"`
	RequireMinimumLines *bool             `json:"requireMinimumLines,omitempty"`
	AllowUnbalanced     bool              `json:"allowUnbalanced,omitempty"`
}

type validateResponse struct {
	Valid        bool            `json:"valid"`
	Errors       []string        `json:"errors"`
	Warnings     []string        `json:"warnings"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"`
	IsBalanced   bool            `json:"isBalanced"`
}

func (h *Handler) validateTransaction(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines := make([]model.LineItem, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, model.LineItem{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		})
	}

	opts := ledger.DefaultOptions()
	if req.RequireMinimumLines != nil {
		opts.RequireMinimumLines = *req.RequireMinimumLines
	}
	opts.AllowUnbalanced = req.AllowUnbalanced

	res := ledger.ValidateTransaction(lines, opts)
	h.writeJSON(w, http.StatusOK, validateResponse{
		Valid:        res.Valid,
		Errors:       emptyIfNil(res.Errors),
		Warnings:     emptyIfNil(res.Warnings),
		TotalDebits:  res.TotalDebits,
		TotalCredits: res.TotalCredits,
		Difference:   res.Difference,
		IsBalanced:   res.Balanced,
	})
}

type transactionResponse struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Reference string             `json:"reference,omitempty"`
	Memo      string             `json:"memo,omitempty"`
	Status    string             `json:"status"`
	Lines     []lineItemResponse `json:"lines"`
}

type lineItemResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	svc := journal.NewService(h.stores.Root(), h.stores.Accounts())
	txs, err := svc.ReadMonth(year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp := transactionResponse{
			ID:        tx.ID,
			Date:      tx.Date.Format("2006-01-02"),
			Reference: tx.Reference,
			Memo:      tx.Memo,
			Status:    string(tx.Status),
			Lines:     make([]lineItemResponse, 0, len(tx.Lines)),
		}
		for _, l := range tx.Lines {
			resp.Lines = append(resp.Lines, lineItemResponse{
				ID:        l.ID,
				AccountID: l.AccountID,
				Debit:     l.Debit,
				Credit:    l.Credit,
				Memo:      l.Memo,
			})
		}
		out = append(out, resp)
	}
	h.writeJSON(w, http.StatusOK, out)
}

type trialBalanceRowResponse struct {
	Account accountResponse `json:"account"`
	Level   int             `json:"level"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

type trialBalanceResponse struct {
	Title        string                    `json:"title"`
	Rows         []trialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
	Balanced     bool                      `json:"balanced"`
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	svc := journal.NewService(h.stores.Root(), h.stores.Accounts())
	txs, err := svc.Posted(year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	title := fmt.Sprintf("Trial Balance %04d-%02d", year, month)
	tb, err := report.BuildTrialBalance(title, h.stores.Accounts(), txs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := trialBalanceResponse{
		Title:        tb.Title,
		Rows:         make([]trialBalanceRowResponse, 0, len(tb.Rows)),
		TotalDebits:  tb.TotalDebits,
		TotalCredits: tb.TotalCredits,
		Balanced:     tb.Balanced,
	}
	for _, row := range tb.Rows {
		out.Rows = append(out.Rows, trialBalanceRowResponse{
			Account: toAccountResponse(row.Account),
			Level:   row.Level,
			Debit:   row.Debit,
			Credit:  row.Credit,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func parseMonth(s string) (year, month int, err error) {
	if s == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t.Year(), int(t.Month()), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
