package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/bank"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// autoCategory asks the categorizer to pick from learned mappings.
const autoCategory = ""

type entryInput struct {
	typ         string
	amount      string
	description string
	category    string
	method      string
	accountID   string
	date        string
}

func (in entryInput) params() (ledger.RecordParams, error) {
	amount, err := money.ParsePositive(in.amount)
	if err != nil {
		return ledger.RecordParams{}, ledger.ErrInvalidAmount
	}

	p := ledger.RecordParams{
		Amount:        amount,
		Description:   strings.TrimSpace(in.description),
		Type:          transaction.Type(in.typ),
		Category:      in.category,
		PaymentMethod: transaction.PaymentMethod(in.method),
	}

	if d := strings.TrimSpace(in.date); d != "" {
		if p.Date, err = time.Parse(time.DateOnly, d); err != nil {
			return ledger.RecordParams{}, fmt.Errorf("invalid date %q (YYYY-MM-DD)", d)
		}
	}

	if p.PaymentMethod == transaction.PaymentBank {
		id, err := uuid.Parse(in.accountID)
		if err != nil {
			return ledger.RecordParams{}, ledger.ErrInvalidTransaction
		}

		p.BankAccountID = &id
	}

	return p, nil
}

func categoryOptions(typ string) []huh.Option[string] {
	list := transaction.ExpenseCategories
	if transaction.Type(typ) == transaction.TypeIncome {
		list = transaction.IncomeCategories
	}

	opts := []huh.Option[string]{huh.NewOption("Auto (learned)", autoCategory)}
	for _, c := range list {
		opts = append(opts, huh.NewOption(c, c))
	}

	return opts
}

func accountOptions(accs []*account.Account) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(accs))

	for _, a := range accs {
		label := fmt.Sprintf("%s %s", a.BankName, a.AccountNumberMasked)
		if a.Frozen() {
			label += " (frozen)"
		}

		opts = append(opts, huh.NewOption(label, a.ID.String()))
	}

	return opts
}

func newEntryForm(in *entryInput, accs []*account.Account) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&in.typ),
			huh.NewInput().
				Title("Amount (₹)").
				Placeholder("250.00").
				Value(&in.amount).
				Validate(func(s string) error {
					if _, err := money.ParsePositive(s); err != nil {
						return fmt.Errorf("enter an amount greater than zero")
					}

					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&in.description).
				Validate(required("description")),
			huh.NewInput().
				Title("Date").
				Placeholder(time.DateOnly).
				Description("Leave empty for today").
				Value(&in.date),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				OptionsFunc(func() []huh.Option[string] { return categoryOptions(in.typ) }, &in.typ).
				Value(&in.category),
			huh.NewSelect[string]().
				Title("Paid with").
				Options(
					huh.NewOption("Cash", string(transaction.PaymentCash)),
					huh.NewOption("Bank account", string(transaction.PaymentBank)),
				).
				Value(&in.method),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account").
				Options(accountOptions(accs)...).
				Value(&in.accountID),
		).WithHideFunc(func() bool {
			return in.method != string(transaction.PaymentBank) || len(accs) == 0
		}),
	).WithWidth(50).WithShowHelp(false)
}

type linkInput struct {
	bankID  string
	number  string
	opening string
}

func newLinkForm(in *linkInput) *huh.Form {
	banks := bank.Supported()

	opts := make([]huh.Option[string], 0, len(banks))
	for _, b := range banks {
		opts = append(opts, huh.NewOption(b.Name, b.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Bank").
				Options(opts...).
				Value(&in.bankID),
			huh.NewInput().
				Title("Account number").
				Description("Only the last four digits are stored").
				Value(&in.number).
				Validate(func(s string) error {
					if _, ok := account.LastFour(s); !ok {
						return fmt.Errorf("enter at least four digits")
					}

					return nil
				}),
			huh.NewInput().
				Title("Opening balance (₹)").
				Placeholder("0.00").
				Value(&in.opening),
		),
	).WithWidth(50).WithShowHelp(false)
}

type amountInput struct {
	amount string
}

func newAmountForm(in *amountInput, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("500.00").
				Value(&in.amount).
				Validate(func(s string) error {
					if _, err := money.ParsePositive(s); err != nil {
						return fmt.Errorf("enter an amount greater than zero")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

type confirmInput struct {
	ok bool
}

func newConfirmForm(in *confirmInput, title, description string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&in.ok),
		),
	).WithWidth(50).WithShowHelp(false)
}
