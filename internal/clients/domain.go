package clients

import "time"

// Client is reference data used to pre-fill a sale at creation time. The
// ledger itself stores only the resulting client name text.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientInput carries the fields accepted on creation.
type CreateClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}
