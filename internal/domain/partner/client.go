package partner

import (
	"strings"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a customer record owned by a single producer.
type Client struct {
	shared.OwnedAggregateRoot
	Name    string
	Phone   string // 11 digits, normalized
	Email   string
	Address string
}

// NormalizePhone strips formatting from a Brazilian phone number and
// validates it to exactly 11 digits (2-digit area code + 9-digit mobile).
// A leading country code 55 is tolerated and removed.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 13 && strings.HasPrefix(digits, "55") {
		digits = digits[2:]
	}
	if len(digits) != 11 {
		return "", shared.NewValidationError("Phone must have 11 digits")
	}
	return digits, nil
}

// NewClient creates a new client owned by the given producer
func NewClient(ownerID uuid.UUID, name, phone, email, address string) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Client name cannot be empty")
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	return &Client{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               strings.TrimSpace(name),
		Phone:              normalized,
		Email:              strings.TrimSpace(email),
		Address:            strings.TrimSpace(address),
	}, nil
}

// Update changes the client's contact details
func (c *Client) Update(name, phone, email, address *string) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return shared.NewValidationError("Client name cannot be empty")
		}
		c.Name = strings.TrimSpace(*name)
	}
	if phone != nil {
		normalized, err := NormalizePhone(*phone)
		if err != nil {
			return err
		}
		c.Phone = normalized
	}
	if email != nil {
		c.Email = strings.TrimSpace(*email)
	}
	if address != nil {
		c.Address = strings.TrimSpace(*address)
	}

	c.Touch()

	return nil
}
