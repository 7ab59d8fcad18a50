// Package importer turns bank CSV exports into ledger transactions.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/wallet/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

// Convert maps a bank row onto a ledger transaction. Money in becomes
// Income, money out becomes Expense, and the amount is rounded to whole units.
func Convert(bt model.BankTransaction) model.Transaction {
	category := model.CategoryIncome
	if bt.Amount.IsNegative() {
		category = model.CategoryExpense
	}
	return model.Transaction{
		Date:        model.Day(bt.Date),
		Category:    category,
		Amount:      bt.Amount.Abs().Round(0).IntPart(),
		Description: strings.Join(strings.Fields(bt.Description), " "),
	}
}

// ConvertAll converts rows in order, skipping zero-amount rows.
func ConvertAll(rows []model.BankTransaction) []model.Transaction {
	var out []model.Transaction
	for _, bt := range rows {
		if bt.Amount.Abs().Round(0).Equal(decimal.Zero) {
			continue
		}
		out = append(out, Convert(bt))
	}
	return out
}

// Fresh returns the incoming transactions not already present in existing.
// Each existing record absorbs at most one identical incoming record, so a
// bank file listing the same purchase twice still imports both on first run.
func Fresh(existing, incoming []model.Transaction) []model.Transaction {
	used := make([]bool, len(existing))
	var out []model.Transaction
next:
	for _, tx := range incoming {
		for i, ex := range existing {
			if !used[i] && ex.Equal(tx) {
				used[i] = true
				continue next
			}
		}
		out = append(out, tx)
	}
	return out
}

// ParseFile opens path and parses it with p.
func ParseFile(path string, p Parser) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", filepath.Base(path), p.Format(), err)
	}
	return rows, nil
}

// importDir is the subdirectory for import CSVs.
const importDir = "import"

// processedDir is the subdirectory for processed CSVs.
const processedDir = "import/processed"

// Scan returns CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
