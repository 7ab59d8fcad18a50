// Package locale holds the label sets used in ledger files.
package locale

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cleared-dev/wallet/internal/model"
)

// Locale names the field labels, category names and search words of one
// ledger file dialect.
type Locale struct {
	Name string

	DateLabel        string
	CategoryLabel    string
	AmountLabel      string
	DescriptionLabel string

	Income  string
	Expense string

	SearchCategory string
	SearchDate     string
	SearchAmount   string
}

// English is the default dialect.
var English = Locale{
	Name:             "en",
	DateLabel:        "Date",
	CategoryLabel:    "Category",
	AmountLabel:      "Amount",
	DescriptionLabel: "Description",
	Income:           "Income",
	Expense:          "Expense",
	SearchCategory:   "category",
	SearchDate:       "date",
	SearchAmount:     "amount",
}

// Russian matches the legacy ledger files with Russian labels.
var Russian = Locale{
	Name:             "ru",
	DateLabel:        "Дата",
	CategoryLabel:    "Категория",
	AmountLabel:      "Сумма",
	DescriptionLabel: "Описание",
	Income:           "Доход",
	Expense:          "Расход",
	SearchCategory:   "категория",
	SearchDate:       "дата",
	SearchAmount:     "сумма",
}

// Lookup returns the locale registered under name. An empty name is English.
func Lookup(name string) (Locale, error) {
	switch strings.ToLower(name) {
	case "", "en":
		return English, nil
	case "ru":
		return Russian, nil
	default:
		return Locale{}, fmt.Errorf("unknown locale %q", name)
	}
}

// CategoryName renders c in this locale. Unknown categories render verbatim.
func (l Locale) CategoryName(c model.Category) string {
	switch c {
	case model.CategoryIncome:
		return l.Income
	case model.CategoryExpense:
		return l.Expense
	default:
		return c.String()
	}
}

// DecodeCategory maps a stored name back to a Category. Names that match
// neither known category are kept as-is.
func (l Locale) DecodeCategory(name string) model.Category {
	switch name {
	case l.Income:
		return model.CategoryIncome
	case l.Expense:
		return model.CategoryExpense
	default:
		return model.OtherCategory(name)
	}
}

// ParseCategory normalizes user input (first letter upper, rest lower) and
// accepts only the two known categories.
func (l Locale) ParseCategory(input string) (model.Category, error) {
	c := l.DecodeCategory(Capitalize(strings.TrimSpace(input)))
	if !c.Known() {
		return model.Category{}, fmt.Errorf("category must be %q or %q, got %q", l.Income, l.Expense, input)
	}
	return c, nil
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
