package invoice

import "context"

// Repository provides read access to CRM invoices
type Repository interface {
	Get(ctx context.Context, id string) (*Invoice, error)
}
