package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Header is the first row of every export.
var Header = []string{"Date", "Type", "Category", "Description", "Payment Method", "Bank", "Amount"}

// Service exports a user's ledger.
type Service struct {
	transactions *transaction.Service
}

func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

// Export writes the user's transactions matching filter to w as CSV, most
// recent first, and returns how many rows were written.
func (s *Service) Export(ctx context.Context, userID string, filter transaction.ListFilter, w io.Writer) (int, error) {
	txs, err := s.transactions.List(ctx, userID, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	if err := WriteCSV(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// ExportToDir writes the export into dir and returns the file path.
func (s *Service) ExportToDir(ctx context.Context, userID string, filter transaction.ListFilter, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := s.Export(ctx, userID, filter, f); err != nil {
		return "", err
	}

	return path, nil
}

// Filename is the suggested name of an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("aapnaincom_ledger_%s.csv", now.Format("20060102"))
}

// WriteCSV renders txs in the export layout. Amounts are signed rupees with
// two decimals so spreadsheets can sum them.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		record := []string{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			t.Category,
			t.Description,
			string(t.PaymentMethod),
			t.BankName,
			rupees(t.Signed()),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func rupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}

// Digest is a plain-text list of txs for pasting into a message.
func Digest(txs []*transaction.Transaction) string {
	var sb strings.Builder

	for _, t := range txs {
		sign := "-"
		if t.Type == transaction.TypeIncome {
			sign = "+"
		}

		via := "Cash"
		if t.PaymentMethod == transaction.PaymentBank {
			via = t.BankName
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n", t.Date.Format("02 Jan 2006"), t.Description, sign, money.Format(t.Amount), via)
	}

	return sb.String()
}
