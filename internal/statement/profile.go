package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column, negative for withdrawals.
	amountSingle amountMode = iota
	// amountSplit means separate withdrawal and deposit columns.
	amountSplit
)

// Profile describes the column layout of one bank's CSV statement export.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:       "hdfc",
		DateCol:    "Date",
		DescCol:    "Narration",
		AmountMode: amountSplit,
		DebitCol:   "Withdrawal Amt.",
		CreditCol:  "Deposit Amt.",
	},
	{
		Name:       "icici",
		DateCol:    "Transaction Date",
		DescCol:    "Transaction Remarks",
		AmountMode: amountSplit,
		DebitCol:   "Withdrawal Amount (INR )",
		CreditCol:  "Deposit Amount (INR )",
	},
	{
		Name:       "sbi",
		DateCol:    "Txn Date",
		DescCol:    "Description",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
	},
	{
		Name:       "generic",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSingle,
		AmountCol:  "Amount",
	},
}

// dateLayouts covers the date formats seen in Indian bank exports.
var dateLayouts = []string{
	"02/01/06",
	"02/01/2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"02-Jan-2006",
	"02-Jan-06",
	"02-01-2006",
	"2006-01-02",
}
