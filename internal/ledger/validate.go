package ledger

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/wallet/internal/model"
)

// Rule numbers reported by Validate.
const (
	RuleCategory    = 1
	RuleAmount      = 2
	RuleDescription = 3
	RuleDate        = 4
)

// ValidationError describes one rule violated by one record.
type ValidationError struct {
	Rule        int
	Record      int // 1-based position in the ledger
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [record %d]: %s", e.Rule, e.Record, e.Description)
}

// Validate checks every record against the ledger rules.
func Validate(records []model.Transaction) []ValidationError {
	var errs []ValidationError
	for i, tx := range records {
		for _, ve := range validateOne(tx) {
			ve.Record = i + 1
			errs = append(errs, ve)
		}
	}
	return errs
}

// validateOne checks a single record. Record positions are left zero.
func validateOne(tx model.Transaction) []ValidationError {
	var errs []ValidationError

	// Rule 1: Category is one of the two that count towards totals.
	if !tx.Category.Known() {
		errs = append(errs, ValidationError{
			Rule:        RuleCategory,
			Description: fmt.Sprintf("category %q is neither %s nor %s and is left out of totals", tx.Category, model.CategoryIncome, model.CategoryExpense),
		})
	}

	// Rule 2: Amount is non-negative.
	if tx.Amount < 0 {
		errs = append(errs, ValidationError{
			Rule:        RuleAmount,
			Description: fmt.Sprintf("amount %d is negative", tx.Amount),
		})
	}

	// Rule 3: Description stays on one line; the file format has no escaping.
	if strings.ContainsAny(tx.Description, "\r\n") {
		errs = append(errs, ValidationError{
			Rule:        RuleDescription,
			Description: "description contains a line break",
		})
	}

	// Rule 4: Date is set.
	if tx.Date.IsZero() {
		errs = append(errs, ValidationError{
			Rule:        RuleDate,
			Description: "date is missing",
		})
	}

	return errs
}
