package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction. Only Income and Expense count towards
// totals. Any other name read from a ledger file is kept verbatim as an other
// category, which never equals Income or Expense even when spelled the same.
type Category struct {
	kind  categoryKind
	other string
}

type categoryKind uint8

const (
	kindOther categoryKind = iota
	kindIncome
	kindExpense
)

var (
	CategoryIncome  = Category{kind: kindIncome}
	CategoryExpense = Category{kind: kindExpense}
)

// OtherCategory returns the category stored under name when name is
// neither income nor expense in the file's dialect.
func OtherCategory(name string) Category {
	return Category{other: name}
}

// Known reports whether c is Income or Expense.
func (c Category) Known() bool {
	return c.kind != kindOther
}

// String returns "Income", "Expense" or the verbatim name of an other category.
func (c Category) String() string {
	switch c.kind {
	case kindIncome:
		return "Income"
	case kindExpense:
		return "Expense"
	default:
		return c.other
	}
}

// Transaction is one ledger entry.
type Transaction struct {
	Date        time.Time // day precision, midnight UTC
	Category    Category
	Amount      int64 // whole currency units
	Description string
}

// Equal reports whether t and o agree on all four fields.
func (t Transaction) Equal(o Transaction) bool {
	return SameDay(t.Date, o.Date) &&
		t.Category == o.Category &&
		t.Amount == o.Amount &&
		t.Description == o.Description
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Totals is the aggregate over a set of transactions.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}
