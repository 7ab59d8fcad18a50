package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/wallet/internal/model"
)

func TestChaseParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, txns, 6)

	// First: GITHUB subscription
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", txns[0].Description)
	assert.Equal(t, "-4.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "ACH_DEBIT", txns[0].Type)
	assert.Equal(t, 2025, txns[0].Date.Year())
	assert.Equal(t, 1, int(txns[0].Date.Month()))
	assert.Equal(t, 3, txns[0].Date.Day())

	// Fourth: ACME income (positive)
	assert.Equal(t, "ACME CONSULTING INVOICE 1042", txns[3].Description)
	assert.True(t, txns[3].Amount.IsPositive())
	assert.Equal(t, "3500.00", txns[3].Amount.StringFixed(2))
}

func TestChaseParser_DateParsing(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	// Jan 22
	last := txns[5]
	assert.Equal(t, 2025, last.Date.Year())
	assert.Equal(t, 1, int(last.Date.Month()))
	assert.Equal(t, 22, last.Date.Day())
}

func TestChaseParser_NegativePositiveAmounts(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	for _, txn := range txns {
		if txn.Description == "ACME CONSULTING INVOICE 1042" {
			assert.True(t, txn.Amount.IsPositive())
		} else {
			assert.True(t, txn.Amount.IsNegative(), "expected negative for %s", txn.Description)
		}
	}
}

func TestChaseParser_DescriptionWhitespace(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	txns, err := (&ChaseParser{}).Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "STAPLES   STORE 1123", txns[1].Description, "parser keeps the raw description")
	assert.Equal(t, "STAPLES STORE 1123", Convert(txns[1]).Description, "conversion collapses runs of spaces")
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParser_BadAmount(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestChaseParser_Format(t *testing.T) {
	p := &ChaseParser{}
	assert.Equal(t, "chase", p.Format())
}

func TestChaseParser_ColumnsByHeader(t *testing.T) {
	in := "Amount,Description,Posting Date\n" +
		"\"-1,204.10\",RENT JANUARY,01/02/2025\n" +
		",,\n" +
		"12.00,REFUND,01/05/2025\n"

	txns, err := (&ChaseParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "RENT JANUARY", txns[0].Description)
	assert.Equal(t, "-1204.10", txns[0].Amount.StringFixed(2))
	assert.Equal(t, 2, txns[0].Date.Day())
	assert.Empty(t, txns[0].Type)
	assert.Equal(t, "REFUND", txns[1].Description)
}

func TestChaseParser_MissingColumn(t *testing.T) {
	_, err := (&ChaseParser{}).Parse(strings.NewReader("Details,Posting Date,Description,Type\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "Amount" column`)
}

func TestChaseParser_ShortRow(t *testing.T) {
	in := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/03/2025\n"
	_, err := (&ChaseParser{}).Parse(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-4.00", "-4"},
		{"3500.00", "3500"},
		{"1,234.56", "1234.56"},
		{"$12.50", "12.5"},
		{"($12.50)", "-12.5"},
		{" 7 ", "7"},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		require.NoError(t, err, "amount %q", tt.in)
		assert.Equal(t, tt.want, got.String(), "amount %q", tt.in)
	}

	for _, bad := range []string{"", "()", "abc", "1.2.3"} {
		_, err := parseAmount(bad)
		assert.Error(t, err, "amount %q", bad)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	p := r.Get("chase")
	require.NotNil(t, p)
	assert.Equal(t, "chase", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CHASE"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("chase"))
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "a.csv")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func bankRow(day int, amount, desc string) model.BankTransaction {
	return model.BankTransaction{
		Date:        time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		amount   string
		category model.Category
		want     int64
	}{
		{"-4.00", model.CategoryExpense, 4},
		{"-127.50", model.CategoryExpense, 128},
		{"-15.49", model.CategoryExpense, 15},
		{"3500.00", model.CategoryIncome, 3500},
		{"0.50", model.CategoryIncome, 1},
	}
	for _, tt := range tests {
		got := Convert(bankRow(3, tt.amount, "x"))
		assert.Equal(t, tt.category, got.Category, "amount %s", tt.amount)
		assert.Equal(t, tt.want, got.Amount, "amount %s", tt.amount)
		assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), got.Date)
	}
}

func TestConvertAll_SkipsZero(t *testing.T) {
	rows := []model.BankTransaction{
		bankRow(1, "-4.00", "a"),
		bankRow(2, "0.00", "b"),
		bankRow(3, "-0.20", "c"),
		bankRow(4, "10", "d"),
	}
	got := ConvertAll(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Description)
	assert.Equal(t, "d", got[1].Description)
}

func TestConvertTestdata(t *testing.T) {
	rows, err := ParseFile("../../testdata/chase_checking.csv", &ChaseParser{})
	require.NoError(t, err)

	txs := ConvertAll(rows)
	require.Len(t, txs, 6)

	var income, expenses int64
	for _, tx := range txs {
		switch tx.Category {
		case model.CategoryIncome:
			income += tx.Amount
		case model.CategoryExpense:
			expenses += tx.Amount
		}
	}
	assert.Equal(t, int64(3500), income)
	assert.Equal(t, int64(4+128+15+250+299), expenses)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "none.csv"), &ChaseParser{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFresh(t *testing.T) {
	a := Convert(bankRow(1, "-4.00", "a"))
	b := Convert(bankRow(2, "-5.00", "b"))
	c := Convert(bankRow(3, "6.00", "c"))

	assert.Equal(t, []model.Transaction{c}, Fresh([]model.Transaction{a, b}, []model.Transaction{a, b, c}))
	assert.Empty(t, Fresh([]model.Transaction{a, b, c}, []model.Transaction{a, b, c}))
	assert.Equal(t, []model.Transaction{a, b}, Fresh(nil, []model.Transaction{a, b}))

	// Two identical purchases, one already imported.
	assert.Equal(t, []model.Transaction{a}, Fresh([]model.Transaction{a}, []model.Transaction{a, a}))
}
