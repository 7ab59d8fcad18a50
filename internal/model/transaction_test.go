package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryKnown(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryIncome, true},
		{CategoryExpense, true},
		{OtherCategory("income"), false},
		{OtherCategory("Other"), false},
		{Category{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.Known(), "Known(%q)", tt.category)
	}
}

func TestOtherCategoryNeverCanonical(t *testing.T) {
	assert.NotEqual(t, CategoryIncome, OtherCategory("Income"))
	assert.NotEqual(t, CategoryExpense, OtherCategory("Expense"))
	assert.Equal(t, "Income", OtherCategory("Income").String())
	assert.Equal(t, "Income", CategoryIncome.String())
	assert.Equal(t, OtherCategory("Gift"), OtherCategory("Gift"))
}

func TestTransactionEqual(t *testing.T) {
	base := Transaction{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Category:    CategoryIncome,
		Amount:      500,
		Description: "Salary",
	}

	same := base
	same.Date = time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	assert.True(t, base.Equal(same), "time of day is ignored")

	otherDate := base
	otherDate.Date = otherDate.Date.AddDate(0, 0, 1)
	otherCategory := base
	otherCategory.Category = CategoryExpense
	otherAmount := base
	otherAmount.Amount = 501
	otherDesc := base
	otherDesc.Description = "salary"

	for _, o := range []Transaction{otherDate, otherCategory, otherAmount, otherDesc} {
		assert.False(t, base.Equal(o), "%+v should differ from %+v", o, base)
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	got := Day(in)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
}
