package identity

import (
	"context"
	"strings"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the user's role in the system
type Role string

const (
	RoleProducer Role = "producer"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleProducer || r == RoleAdmin
}

// ApprovalStatus represents the account approval lifecycle
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid checks if the status is a valid ApprovalStatus
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// User is a producer account. Its ID doubles as the owner id of every
// resource the producer creates.
type User struct {
	shared.BaseAggregateRoot
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	ApprovalStatus ApprovalStatus
}

// NewUser registers a new producer account, pending approval
func NewUser(name, email, password string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("A valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("Password must have at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             email,
		PasswordHash:      string(hash),
		Role:              RoleProducer,
		ApprovalStatus:    ApprovalStatusPending,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsApproved returns true when the account may use the system
func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalStatusApproved
}

// SetApprovalStatus moves the account through the approval lifecycle
func (u *User) SetApprovalStatus(status ApprovalStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid approval status")
	}
	u.ApprovalStatus = status
	u.Touch()
	return nil
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an account already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
