package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/wallet/internal/model"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"", "en", "EN"} {
		loc, err := Lookup(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, "en", loc.Name)
	}

	loc, err := Lookup("ru")
	require.NoError(t, err)
	assert.Equal(t, "Дата", loc.DateLabel)

	_, err = Lookup("fr")
	require.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		loc   Locale
		input string
		want  model.Category
	}{
		{English, "income", model.CategoryIncome},
		{English, "EXPENSE", model.CategoryExpense},
		{English, "  Income ", model.CategoryIncome},
		{Russian, "доход", model.CategoryIncome},
		{Russian, "РАСХОД", model.CategoryExpense},
	}
	for _, tt := range tests {
		got, err := tt.loc.ParseCategory(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "Salary", "Incomes", "Доход"} {
		_, err := English.ParseCategory(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
	for _, bad := range []string{"income", "Expense"} {
		_, err := Russian.ParseCategory(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestDecodeCategory_ForeignCanonicalName(t *testing.T) {
	assert.Equal(t, model.OtherCategory("Income"), Russian.DecodeCategory("Income"))
	assert.Equal(t, model.OtherCategory("Доход"), English.DecodeCategory("Доход"))
	assert.Equal(t, "Income", Russian.CategoryName(Russian.DecodeCategory("Income")))
}

func TestCategoryNameRoundTrip(t *testing.T) {
	for _, loc := range []Locale{English, Russian} {
		for _, c := range []model.Category{model.CategoryIncome, model.CategoryExpense, model.OtherCategory("Gift")} {
			assert.Equal(t, c, loc.DecodeCategory(loc.CategoryName(c)), "locale %s category %q", loc.Name, c)
		}
	}
	assert.Equal(t, "Расход", Russian.CategoryName(model.CategoryExpense))
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"income", "Income"},
		{"iNCOME", "Income"},
		{"расход", "Расход"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in))
	}
}
