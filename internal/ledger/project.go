package ledger

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Project derives an account balance from its opening balance and the ledger,
// folding the signed amount of every transaction settled through it.
func Project(opening int64, accountID uuid.UUID, txs []*transaction.Transaction) int64 {
	balance := opening

	for _, t := range txs {
		if t.LinkedTo(accountID) {
			balance += t.Signed()
		}
	}

	return balance
}
