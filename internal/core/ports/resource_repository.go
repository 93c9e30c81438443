package ports

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// BootcampRepository defines persistence operations for bootcamps.
type BootcampRepository interface {
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	FindByID(ctx context.Context, id string) (*domain.Bootcamp, error)
	// ExistsForUser reports whether userID already owns a bootcamp.
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context) ([]*domain.Bootcamp, error)
	// WithinRadius returns bootcamps whose location lies inside the spherical
	// cap around (lat, lng); radius is in radians.
	WithinRadius(ctx context.Context, lat, lng, radius float64) ([]*domain.Bootcamp, error)
	Update(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	Delete(ctx context.Context, id string) error
	// RefreshAverages recomputes average_cost and average_rating from the
	// bootcamp's courses and reviews.
	RefreshAverages(ctx context.Context, id string) error
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, bootcampID string) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	// Create returns domain.ErrReviewExists when the user already reviewed
	// the bootcamp.
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context, bootcampID string) ([]*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
}
