// Package session runs the interactive menu: add, edit or search, then print
// the totals.
package session

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/wallet/internal/ledger"
	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/model"
	"github.com/cleared-dev/wallet/internal/store"
)

// ErrInvalidChoice is returned for a menu answer other than 1, 2 or 3.
var ErrInvalidChoice = errors.New("invalid menu choice")

const (
	choiceAdd    = 1
	choiceEdit   = 2
	choiceSearch = 3
)

// Session is one interactive run over a ledger.
type Session struct {
	svc    *ledger.Service
	loc    locale.Locale
	prompt Prompter
	out    io.Writer
	now    func() time.Time
}

// New creates a Session. Prompts and answers go through p, everything else
// is written to out.
func New(svc *ledger.Service, p Prompter, out io.Writer) *Session {
	return &Session{
		svc:    svc,
		loc:    svc.Store().Locale(),
		prompt: p,
		out:    out,
		now:    time.Now,
	}
}

// fieldPrompts holds the four questions asked to fill a transaction.
type fieldPrompts struct {
	date, category, amount, description string
}

func (s *Session) addPrompts() fieldPrompts {
	return fieldPrompts{
		date:        "Enter the record date (DD.MM.YYYY): ",
		category:    fmt.Sprintf("Enter the category (%s/%s): ", s.loc.Income, s.loc.Expense),
		amount:      "Enter the amount: ",
		description: "Enter the description: ",
	}
}

func (s *Session) targetPrompts() fieldPrompts {
	return fieldPrompts{
		date:        "Enter the date of the record to edit (DD.MM.YYYY): ",
		category:    fmt.Sprintf("Enter the category of the record to edit (%s/%s): ", s.loc.Income, s.loc.Expense),
		amount:      "Enter the amount of the record to edit: ",
		description: "Enter the description of the record to edit: ",
	}
}

func (s *Session) replacementPrompts() fieldPrompts {
	return fieldPrompts{
		date:        "Enter the new date (DD.MM.YYYY): ",
		category:    fmt.Sprintf("Enter the new category (%s/%s): ", s.loc.Income, s.loc.Expense),
		amount:      "Enter the new amount: ",
		description: "Enter the new description: ",
	}
}

// Run loads the ledger, performs one menu action and prints the totals.
func (s *Session) Run() error {
	records, err := s.svc.Load()
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "What would you like to do?")
	fmt.Fprintln(s.out, "1. Add a new record")
	fmt.Fprintln(s.out, "2. Edit a record")
	fmt.Fprintln(s.out, "3. Search records")
	answer, err := s.prompt.Ask("Enter the action number: ")
	if err != nil {
		return err
	}
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, answer)
	}

	var pending []model.Transaction
	switch choice {
	case choiceAdd:
		tx, err := s.readTransaction(s.addPrompts())
		if err != nil {
			return err
		}
		if err := s.runAdd(tx); err != nil {
			return err
		}
		pending = append(pending, tx)
	case choiceEdit:
		target, err := s.readTransaction(s.targetPrompts())
		if err != nil {
			return err
		}
		if _, err := s.runEdit(records, target); err != nil {
			return err
		}
	case choiceSearch:
		kind, err := s.prompt.Ask(fmt.Sprintf("Enter the search type (%s/%s/%s): ", s.loc.SearchCategory, s.loc.SearchDate, s.loc.SearchAmount))
		if err != nil {
			return err
		}
		term, err := s.prompt.Ask("Enter the search value: ")
		if err != nil {
			return err
		}
		s.runSearch(records, term, ledger.ParseSearchKind(kind, s.loc))
	default:
		return fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	PrintTotals(s.out, s.now(), ledger.ComputeTotals(records, pending...))
	return nil
}

// runAdd appends tx to the ledger file. The caller keeps tx as pending so
// the totals include it without reloading.
func (s *Session) runAdd(tx model.Transaction) error {
	return s.svc.Add(tx)
}

// runEdit looks up target in records and, if found, asks for the new field
// values, applies them and saves the ledger.
func (s *Session) runEdit(records []model.Transaction, target model.Transaction) (bool, error) {
	if ledger.Find(records, target) < 0 {
		fmt.Fprintln(s.out, "Record not found.")
		return false, nil
	}

	fmt.Fprintln(s.out, "Record found. Enter the new details.")
	replacement, err := s.readTransaction(s.replacementPrompts())
	if err != nil {
		return false, err
	}
	ok, err := s.svc.Apply(records, target, replacement)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(s.out, "Record not found.")
		return false, nil
	}
	fmt.Fprintln(s.out, "Record updated.")
	return true, nil
}

// runSearch prints and returns the records matching term.
func (s *Session) runSearch(records []model.Transaction, term string, kind ledger.SearchKind) []model.Transaction {
	results := ledger.Search(records, term, kind, s.loc)
	for _, tx := range results {
		fmt.Fprintln(s.out, Line(s.loc, tx))
	}
	return results
}

func (s *Session) readTransaction(p fieldPrompts) (model.Transaction, error) {
	date, err := s.readDate(p.date)
	if err != nil {
		return model.Transaction{}, err
	}
	category, err := s.readCategory(p.category)
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := s.readAmount(p.amount)
	if err != nil {
		return model.Transaction{}, err
	}
	description, err := s.prompt.Ask(p.description)
	if err != nil {
		return model.Transaction{}, err
	}
	return ledger.Create(date, category, amount, description), nil
}

func (s *Session) readDate(prompt string) (time.Time, error) {
	for {
		answer, err := s.prompt.Ask(prompt)
		if err != nil {
			return time.Time{}, err
		}
		d, err := time.Parse(store.DateFormat, strings.TrimSpace(answer))
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(s.out, "Invalid date format. Please enter the date as DD.MM.YYYY.")
	}
}

func (s *Session) readCategory(prompt string) (model.Category, error) {
	for {
		answer, err := s.prompt.Ask(prompt)
		if err != nil {
			return model.Category{}, err
		}
		c, err := s.loc.ParseCategory(answer)
		if err == nil {
			return c, nil
		}
		fmt.Fprintf(s.out, "Invalid category. Enter '%s' or '%s'.\n", s.loc.Income, s.loc.Expense)
	}
}

func (s *Session) readAmount(prompt string) (int64, error) {
	for {
		answer, err := s.prompt.Ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
		if err == nil && n >= 0 {
			return n, nil
		}
		fmt.Fprintln(s.out, "Invalid amount. Please enter a whole non-negative number.")
	}
}

// Line renders one record on a single line.
func Line(loc locale.Locale, tx model.Transaction) string {
	return fmt.Sprintf("%s: %s, %s: %s, %s: %d, %s: %s",
		loc.DateLabel, tx.Date.Format(store.DateFormat),
		loc.CategoryLabel, loc.CategoryName(tx.Category),
		loc.AmountLabel, tx.Amount,
		loc.DescriptionLabel, tx.Description,
	)
}

// PrintTotals writes today's date followed by income, expenses and balance.
func PrintTotals(w io.Writer, now time.Time, t model.Totals) {
	fmt.Fprintln(w, "Current date:", now.Format("2006-01-02"))
	fmt.Fprintln(w, "Income:", t.Income.String())
	fmt.Fprintln(w, "Expenses:", t.Expenses.String())
	fmt.Fprintln(w, "Balance:", t.Balance.String())
}
