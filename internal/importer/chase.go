package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/wallet/internal/model"
)

// ChaseParser reads checking-account exports from Chase. Columns are found by
// header name, so reordered or extra columns are fine:
//
//	Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
type ChaseParser struct{}

const chaseDateFormat = "01/02/2006"

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns BankTransactions. Blank rows are skipped.
func (p *ChaseParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading chase header: %w", err)
	}
	layout, err := chaseColumns(header)
	if err != nil {
		return nil, err
	}

	var txns []model.BankTransaction
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading chase CSV: %w", err)
		}
		if strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		txn, err := layout.parse(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// chaseLayout holds column positions. kind is -1 when the export has no
// Type column.
type chaseLayout struct {
	date, desc, amount, kind int
}

func chaseColumns(header []string) (chaseLayout, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	find := func(name string) (int, error) {
		i, ok := pos[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("chase CSV: missing %q column", name)
		}
		return i, nil
	}

	var l chaseLayout
	var err error
	if l.date, err = find("Posting Date"); err != nil {
		return l, err
	}
	if l.desc, err = find("Description"); err != nil {
		return l, err
	}
	if l.amount, err = find("Amount"); err != nil {
		return l, err
	}
	if l.kind, err = find("Type"); err != nil {
		l.kind = -1
	}
	return l, nil
}

func (l chaseLayout) parse(rec []string) (model.BankTransaction, error) {
	if n := max(l.date, l.desc, l.amount, l.kind) + 1; len(rec) < n {
		return model.BankTransaction{}, fmt.Errorf("want at least %d fields, got %d", n, len(rec))
	}

	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[l.date]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[l.date], err)
	}
	amount, err := parseAmount(rec[l.amount])
	if err != nil {
		return model.BankTransaction{}, err
	}

	txn := model.BankTransaction{
		Date:        date,
		Description: rec[l.desc],
		Amount:      amount,
	}
	if l.kind >= 0 {
		txn.Type = rec[l.kind]
	}
	return txn, nil
}

// parseAmount accepts "-1,234.56", "$12.00" and the bookkeeping form "(12.00)"
// for a negative amount.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	neg := len(clean) > 2 && clean[0] == '(' && clean[len(clean)-1] == ')'
	if neg {
		clean = clean[1 : len(clean)-1]
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}
