package statement

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Categorizer picks a category for an imported description.
type Categorizer interface {
	Categorize(ctx context.Context, userID, description string, typ transaction.Type) (string, error)
}

type Service struct {
	parser      *Parser
	categorizer Categorizer
}

func NewService(categorizer Categorizer) *Service {
	return &Service{parser: NewParser(), categorizer: categorizer}
}

// Import parses a statement, categorizes each row and books the batch
// against accountID in one ledger transaction.
func (s *Service) Import(ctx context.Context, l *ledger.Ledger, accountID uuid.UUID, r io.Reader) (*ledger.ImportResult, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	userID := l.Owner().UserID()

	for i := range rows {
		category, err := s.categorizer.Categorize(ctx, userID, rows[i].Description, rows[i].Type)
		if err != nil {
			return nil, fmt.Errorf("categorizing row %d: %w", i+1, err)
		}

		rows[i].Category = category
	}

	return l.Import(ctx, accountID, rows)
}
