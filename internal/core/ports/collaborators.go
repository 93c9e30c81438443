package ports

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// Mailer delivers a plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Geocoder resolves a free-form address or zipcode into a point.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Location, error)
}

// Locker serialises work on a single key across instances.
type Locker interface {
	// Acquire returns a release func, or domain.ErrResetInProgress when the
	// key is already held.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
