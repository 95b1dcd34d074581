package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	service "github.com/freightops-pro/fopsbackend-sub004/internal/services/reconciliation"
)

const dateLayout = "2006-01-02"

type ReconciliationHandler struct {
	service *service.Service
}

func NewReconciliationHandler(s *service.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

// Run starts a reconciliation pass for one account and date window.
func (h *ReconciliationHandler) Run(c *gin.Context) {
	var payload struct {
		AccountID            string   `json:"account_id"`
		AccountType          string   `json:"account_type"`
		StartDate            string   `json:"start_date"`
		EndDate              string   `json:"end_date"`
		AutoApproveThreshold *float64 `json:"auto_approve_threshold"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	accountID, err := uuid.Parse(payload.AccountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
		return
	}
	start, end, ok := parseWindow(c, payload.StartDate, payload.EndDate)
	if !ok {
		return
	}

	threshold := service.DefaultAutoApproveThreshold
	if payload.AutoApproveThreshold != nil {
		threshold = *payload.AutoApproveThreshold
	}

	result, err := h.service.ReconcileAccount(c.Request.Context(), accountID, payload.AccountType, start, end, threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ManualMatch pairs a bank transaction with a ledger entry on a reviewer's
// decision.
func (h *ReconciliationHandler) ManualMatch(c *gin.Context) {
	bankTxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	var payload struct {
		AccountType   string `json:"account_type"`
		LedgerEntryID string `json:"ledger_entry_id"`
		ActorID       string `json:"actor_id"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	ledgerEntryID, err := uuid.Parse(payload.LedgerEntryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ledger entry ID"})
		return
	}
	actorID, err := uuid.Parse(payload.ActorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor ID"})
		return
	}

	if err := h.service.ManualMatch(c.Request.Context(), payload.AccountType, bankTxID, ledgerEntryID, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction manually matched"})
}

// Unmatch clears a transaction's match; a transaction with no match is a
// valid no-op.
func (h *ReconciliationHandler) Unmatch(c *gin.Context) {
	bankTxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	// The body is optional: unmatching only needs the transaction id.
	var payload struct {
		AccountType string `json:"account_type"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	if err := h.service.Unmatch(c.Request.Context(), payload.AccountType, bankTxID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction unmatched"})
}

// Summary reports cumulative reconciliation figures for a company and window.
func (h *ReconciliationHandler) Summary(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	start, end, ok := parseWindow(c, c.Query("start_date"), c.Query("end_date"))
	if !ok {
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), companyID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Unmatched lists both unreconciled sides for review.
func (h *ReconciliationHandler) Unmatched(c *gin.Context) {
	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
		return
	}
	start, end, ok := parseWindow(c, c.Query("start_date"), c.Query("end_date"))
	if !ok {
		return
	}

	txs, entries, err := h.service.UnmatchedForReview(c.Request.Context(), accountID, c.Query("account_type"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"unmatched_bank_transactions": txs,
		"unmatched_ledger_entries":    entries,
	})
}

// Audit lists the match/unmatch history for a bank transaction.
func (h *ReconciliationHandler) Audit(c *gin.Context) {
	bankTxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	logs, err := h.service.AuditTrail(c.Request.Context(), bankTxID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}

func parseWindow(c *gin.Context, startStr, endStr string) (start, end time.Time, ok bool) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return start, end, false
	}
	end, err = time.Parse(dateLayout, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return start, end, false
	}
	return start, end, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyReconciled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidThreshold),
		errors.Is(err, service.ErrUnknownAccountType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
