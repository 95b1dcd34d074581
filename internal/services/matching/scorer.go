package matching

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
)

// Signal weights. The three signals sum to 1.0, so total confidence is
// bounded to [0, 1] by construction.
const (
	amountWeight     = 0.40
	amountNearWeight = 0.35

	dateWeight       = 0.30
	dateOneDayWeight = 0.25
	dateTwoDayWeight = 0.15

	descriptionWeight = 0.30
)

// amountTolerance is one cent: amounts closer than this still count as an
// amount hit, at reduced weight.
var amountTolerance = decimal.New(1, -2)

// Result is the outcome of scoring one candidate (bank transaction, ledger
// entry) pair. Reason lists the contributors that fired, for auditability.
type Result struct {
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Score computes the confidence that tx and entry describe the same money
// movement. Pure function: safe to call concurrently, never fails — missing
// data contributes zero instead of erroring.
func Score(tx *models.BankTransaction, entry *models.LedgerEntry) Result {
	var confidence float64
	var reasons []string

	diff := tx.Amount.Sub(entry.Amount).Abs()
	switch {
	case diff.IsZero():
		confidence += amountWeight
		reasons = append(reasons, "exact amount")
	case diff.LessThan(amountTolerance):
		confidence += amountNearWeight
		reasons = append(reasons, "amount within a cent")
	}

	switch daysApart(tx.PostingDate, entry.EntryDate) {
	case 0:
		confidence += dateWeight
		reasons = append(reasons, "same date")
	case 1:
		confidence += dateOneDayWeight
		reasons = append(reasons, "1 day apart")
	case 2:
		confidence += dateTwoDayWeight
		reasons = append(reasons, "2 days apart")
	}

	bankText := tx.MerchantName
	if bankText == "" {
		bankText = tx.Description
	}
	bankNorm := Normalize(bankText)
	entryNorm := Normalize(entry.Description)
	if bankNorm != "" && entryNorm != "" {
		ratio := descriptionSimilarity(bankNorm, entryNorm)
		confidence += ratio * descriptionWeight
		switch {
		case ratio >= 0.8:
			reasons = append(reasons, "high description match")
		case ratio >= 0.5:
			reasons = append(reasons, "partial description match")
		}
	}

	if confidence > 1 {
		confidence = 1
	}

	reason := "low match"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, " + ")
	}
	return Result{Confidence: confidence, Reason: reason}
}

// descriptionSimilarity returns a [0,1] ratio between two normalized
// descriptions. Each ledger token is matched against its closest bank token
// by edit-distance ratio and the per-token bests are averaged, so noise
// prefixes in bank descriptions ("ACH", "POS") do not drag the score down.
func descriptionSimilarity(bankNorm, entryNorm string) float64 {
	bankTokens := strings.Fields(bankNorm)
	entryTokens := strings.Fields(entryNorm)
	if len(bankTokens) == 0 || len(entryTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, et := range entryTokens {
		best := 0.0
		for _, bt := range bankTokens {
			sim := levenshtein.RatioForStrings([]rune(et), []rune(bt), levenshtein.DefaultOptions)
			if sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(entryTokens))
}

// daysApart is the absolute difference between two calendar dates in whole
// days, ignoring the time-of-day component.
func daysApart(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
