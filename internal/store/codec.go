// Package store reads and writes the plain-text ledger file.
//
// A record is four labeled lines in fixed order followed by a blank line:
//
//	Date: 01.01.2024
//	Category: Income
//	Amount: 500
//	Description: Salary
//
// Labels and category names come from the file's locale.
package store

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/model"
)

// DateFormat is the on-disk date layout (DD.MM.YYYY).
const DateFormat = "02.01.2006"

const (
	separator = ": "
	numFields = 4
	fldDate   = 0
	fldCat    = 1
	fldAmount = 2
	fldDesc   = 3
)

// Options tunes decoding.
type Options struct {
	// KeepUnterminated returns a final record that is not followed by a
	// blank line. By default such a record is dropped, matching how legacy
	// ledger files have always been read.
	KeepUnterminated bool
}

// ParseError describes a malformed ledger file.
type ParseError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Encode writes one record block, including the terminating blank line.
func Encode(w io.Writer, loc locale.Locale, tx model.Transaction) error {
	_, err := fmt.Fprintf(w, "%s%s%s\n%s%s%s\n%s%s%d\n%s%s%s\n\n",
		loc.DateLabel, separator, tx.Date.Format(DateFormat),
		loc.CategoryLabel, separator, loc.CategoryName(tx.Category),
		loc.AmountLabel, separator, tx.Amount,
		loc.DescriptionLabel, separator, tx.Description,
	)
	return err
}

// EncodeAll writes every record in order.
func EncodeAll(w io.Writer, loc locale.Locale, txs []model.Transaction) error {
	for i, tx := range txs {
		if err := Encode(w, loc, tx); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	return nil
}

// maxLineSize bounds a single ledger line.
const maxLineSize = 16 << 20

// Decode reads all records from r.
func Decode(r io.Reader, loc locale.Locale, opts Options) ([]model.Transaction, error) {
	records, _, err := decode(r, loc, opts)
	return records, err
}

// decode is Decode that also returns the raw lines of a final record it
// dropped for lack of a trailing blank line, so that a rewrite can keep them.
func decode(r io.Reader, loc locale.Locale, opts Options) ([]model.Transaction, []string, error) {
	labels := [numFields]string{loc.DateLabel, loc.CategoryLabel, loc.AmountLabel, loc.DescriptionLabel}

	var (
		records []model.Transaction
		fields  []string
		raw     []string
		start   int
		lineNo  int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			if len(fields) == 0 {
				continue
			}
			if len(fields) < numFields {
				return nil, nil, &ParseError{
					Line:   lineNo,
					Reason: fmt.Sprintf("record starting at line %d has %d of %d fields", start, len(fields), numFields),
				}
			}
			tx, err := parseRecord(fields, loc, start)
			if err != nil {
				return nil, nil, err
			}
			records = append(records, tx)
			fields = fields[:0]
			raw = raw[:0]
			continue
		}

		if len(fields) == numFields {
			return nil, nil, &ParseError{Line: lineNo, Reason: "expected blank line after record"}
		}

		label, value, ok := strings.Cut(line, separator)
		if !ok {
			return nil, nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("missing %q separator", separator)}
		}
		if want := labels[len(fields)]; label != want {
			return nil, nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("expected label %q, got %q", want, label)}
		}
		if len(fields) == 0 {
			start = lineNo
		}
		fields = append(fields, value)
		raw = append(raw, line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("scanning ledger: %w", err)
	}

	if len(fields) > 0 {
		if !opts.KeepUnterminated {
			log.Warn().Int("line", start).Msg("final record has no trailing blank line, skipping it")
			return records, raw, nil
		}
		if len(fields) < numFields {
			return nil, nil, &ParseError{
				Line:   lineNo,
				Reason: fmt.Sprintf("record starting at line %d has %d of %d fields", start, len(fields), numFields),
			}
		}
		tx, err := parseRecord(fields, loc, start)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, tx)
	}

	return records, nil, nil
}

func parseRecord(fields []string, loc locale.Locale, start int) (model.Transaction, error) {
	raw := strings.TrimSpace(fields[fldDate])
	date, err := time.Parse(DateFormat, raw)
	if err != nil {
		return model.Transaction{}, &ParseError{Line: start + fldDate, Reason: fmt.Sprintf("parsing date %q", raw), Err: err}
	}

	raw = strings.TrimSpace(fields[fldAmount])
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return model.Transaction{}, &ParseError{Line: start + fldAmount, Reason: fmt.Sprintf("parsing amount %q", raw), Err: err}
	}

	return model.Transaction{
		Date:        date,
		Category:    loc.DecodeCategory(strings.TrimSpace(fields[fldCat])),
		Amount:      amount,
		Description: fields[fldDesc],
	}, nil
}
