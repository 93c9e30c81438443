package ports

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// RegisterInput carries the fields accepted on self-registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService covers authentication and the password reset lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate turns a bearer token into the stored user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Me(ctx context.Context, actor domain.Actor) (*domain.User, error)
	UpdateDetails(ctx context.Context, actor domain.Actor, name, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, actor domain.Actor, current, next string) (string, error)
	// ForgotPassword issues a reset token and mails resetURL+token to the user.
	ForgotPassword(ctx context.Context, email, resetURL string) error
	ResetPassword(ctx context.Context, plaintext, password string) (string, error)
}

// UserInput is the admin-side user payload.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserService is the admin-only user management surface.
type UserService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	Create(ctx context.Context, actor domain.Actor, in UserInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// BootcampService defines use-case operations for bootcamps.
type BootcampService interface {
	List(ctx context.Context) ([]*domain.Bootcamp, error)
	Get(ctx context.Context, id string) (*domain.Bootcamp, error)
	Create(ctx context.Context, actor domain.Actor, b *domain.Bootcamp) (*domain.Bootcamp, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch func(*domain.Bootcamp)) (*domain.Bootcamp, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// WithinRadius finds bootcamps within distance miles of zipcode.
	WithinRadius(ctx context.Context, zipcode string, distance float64) ([]*domain.Bootcamp, error)
}

// CourseService defines use-case operations for courses.
type CourseService interface {
	List(ctx context.Context, bootcampID string) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Add(ctx context.Context, actor domain.Actor, bootcampID string, c *domain.Course) (*domain.Course, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch func(*domain.Course)) (*domain.Course, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// ReviewService defines use-case operations for reviews.
type ReviewService interface {
	List(ctx context.Context, bootcampID string) ([]*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Add(ctx context.Context, actor domain.Actor, bootcampID string, r *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch func(*domain.Review)) (*domain.Review, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
