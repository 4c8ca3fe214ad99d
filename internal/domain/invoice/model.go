package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the billing document a payment settles. It lives in the CRM
// database; the bridge reads it to validate payments and render checkout
// titles but never mutates it directly.
type Invoice struct {
	ID         string          `db:"id" json:"id"`
	ClientID   string          `db:"client_id" json:"client_id"`
	Serie      string          `db:"serie" json:"serie"`
	Number     int             `db:"nr" json:"nr"`
	BuyerEmail string          `db:"buyer_email" json:"buyer_email"`
	Currency   string          `db:"currency" json:"currency"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Hash       string          `db:"hash" json:"hash"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Title renders the human readable payment description, e.g. "Payment for invoice PS-00042"
func (i *Invoice) Title() string {
	return fmt.Sprintf("Payment for invoice %s%05d", i.Serie, i.Number)
}
