// Package activity keeps a CSV history of changes made to the ledger.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/wallet/internal/model"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp   time.Time
	Action      string
	Date        string // DD.MM.YYYY of the affected record
	Category    string
	Amount      int64
	Description string
	Details     string
}

// Header is the CSV header for the activity log.
const Header = "timestamp,action,date,category,amount,description,details"

const (
	numFields      = 7
	colTimestamp   = 0
	colAction      = 1
	colDate        = 2
	colCategory    = 3
	colAmount      = 4
	colDescription = 5
	colDetails     = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colDate] = e.Date
	row[colCategory] = e.Category
	row[colAmount] = strconv.FormatInt(e.Amount, 10)
	row[colDescription] = e.Description
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	amount, err := strconv.ParseInt(record[colAmount], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return Entry{
		Timestamp:   ts,
		Action:      record[colAction],
		Date:        record[colDate],
		Category:    record[colCategory],
		Amount:      amount,
		Description: record[colDescription],
		Details:     record[colDetails],
	}, nil
}

// Append writes entries to the log at path, creating the file and header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Log records ledger changes to a CSV file. It satisfies ledger.Recorder.
type Log struct {
	path string
	now  func() time.Time
}

// NewLog creates a Log writing to path.
func NewLog(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Path returns the log file path.
func (l *Log) Path() string { return l.path }

// Record appends one entry describing tx.
func (l *Log) Record(action string, tx model.Transaction, details string) error {
	return Append(l.path, []Entry{{
		Timestamp:   l.now().UTC().Truncate(time.Second),
		Action:      action,
		Date:        tx.Date.Format("02.01.2006"),
		Category:    tx.Category.String(),
		Amount:      tx.Amount,
		Description: tx.Description,
		Details:     details,
	}})
}
