package ports

import (
	"context"
	"time"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// UserFields is the partial update applied by UpdateDetails and admin edits.
// Nil fields are left untouched.
type UserFields struct {
	Name         *string
	Email        *string
	Role         *domain.Role
	PasswordHash *string
}

// UserRepository defines persistence for users, including the reset-token
// field pair. Every reset-token method is a single atomic document update.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, fields UserFields) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// SetResetToken stores hash and expiry, replacing any prior token.
	SetResetToken(ctx context.Context, id, hash string, expiresAt time.Time) error
	// ClearResetToken unsets both fields only while the stored hash equals hash.
	ClearResetToken(ctx context.Context, id, hash string) error
	// ConsumeResetToken finds the user whose stored hash equals hash and whose
	// expiry is after now, sets passwordHash and unsets both token fields in
	// one step. Returns domain.ErrInvalidToken when nothing matches.
	ConsumeResetToken(ctx context.Context, hash string, now time.Time, passwordHash string) (*domain.User, error)
}
