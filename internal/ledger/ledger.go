// Package ledger implements the in-memory operations over a list of
// transactions: create, totals, edit, search and validation.
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/model"
	"github.com/cleared-dev/wallet/internal/store"
)

// Create builds a Transaction from already validated fields.
func Create(date time.Time, category model.Category, amount int64, description string) model.Transaction {
	return model.Transaction{
		Date:        model.Day(date),
		Category:    category,
		Amount:      amount,
		Description: description,
	}
}

// ComputeTotals sums Income and Expense amounts over records and any pending
// transactions not yet part of records. Other categories are ignored.
func ComputeTotals(records []model.Transaction, pending ...model.Transaction) model.Totals {
	income := decimal.Zero
	expenses := decimal.Zero

	add := func(tx model.Transaction) {
		switch tx.Category {
		case model.CategoryIncome:
			income = income.Add(decimal.NewFromInt(tx.Amount))
		case model.CategoryExpense:
			expenses = expenses.Add(decimal.NewFromInt(tx.Amount))
		}
	}
	for _, tx := range records {
		add(tx)
	}
	for _, tx := range pending {
		add(tx)
	}

	return model.Totals{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// Edit overwrites the first record equal to target with replacement.
// It reports whether a record was found; on false nothing is changed.
func Edit(records []model.Transaction, target, replacement model.Transaction) bool {
	i := Find(records, target)
	if i < 0 {
		return false
	}
	records[i] = Create(replacement.Date, replacement.Category, replacement.Amount, replacement.Description)
	return true
}

// Find returns the index of the first record equal to target, or -1.
func Find(records []model.Transaction, target model.Transaction) int {
	for i, tx := range records {
		if tx.Equal(target) {
			return i
		}
	}
	return -1
}

// SearchKind selects the field a search term is matched against.
type SearchKind string

const (
	KindCategory SearchKind = "category"
	KindDate     SearchKind = "date"
	KindAmount   SearchKind = "amount"
)

// ParseSearchKind accepts the English kind names and the words of loc.
// Unrecognized input is returned as-is; Search matches nothing for it.
func ParseSearchKind(s string, loc locale.Locale) SearchKind {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case string(KindCategory), loc.SearchCategory:
		return KindCategory
	case string(KindDate), loc.SearchDate:
		return KindDate
	case string(KindAmount), loc.SearchAmount:
		return KindAmount
	default:
		return SearchKind(s)
	}
}

// CategoryNamer renders a category the way the user sees it.
type CategoryNamer interface {
	CategoryName(c model.Category) string
}

// Search returns the records matching term, in their original order.
//
// Category terms match case-insensitively anywhere in the category name as
// rendered by namer (the canonical value when namer is nil). Date and amount
// terms must equal the DD.MM.YYYY date or the decimal amount exactly.
func Search(records []model.Transaction, term string, kind SearchKind, namer CategoryNamer) []model.Transaction {
	var match func(model.Transaction) bool
	switch kind {
	case KindCategory:
		needle := strings.ToLower(term)
		match = func(tx model.Transaction) bool {
			name := tx.Category.String()
			if namer != nil {
				name = namer.CategoryName(tx.Category)
			}
			return strings.Contains(strings.ToLower(name), needle)
		}
	case KindDate:
		match = func(tx model.Transaction) bool {
			return tx.Date.Format(store.DateFormat) == term
		}
	case KindAmount:
		match = func(tx model.Transaction) bool {
			return strconv.FormatInt(tx.Amount, 10) == term
		}
	default:
		return nil
	}

	var results []model.Transaction
	for _, tx := range records {
		if match(tx) {
			results = append(results, tx)
		}
	}
	return results
}

// Until returns the records dated on or before day.
func Until(records []model.Transaction, day time.Time) []model.Transaction {
	day = model.Day(day)
	var out []model.Transaction
	for _, tx := range records {
		if !model.Day(tx.Date).After(day) {
			out = append(out, tx)
		}
	}
	return out
}
