package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/policy"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
	"github.com/devcamper/bootcamp-api/internal/pkg/metrics"
)

// earthRadiusMiles converts a distance in miles to radians for $centerSphere.
const earthRadiusMiles = 3963.0

type BootcampService struct {
	bootcamps ports.BootcampRepository
	courses   ports.CourseRepository
	reviews   ports.ReviewRepository
	geocoder  ports.Geocoder // optional
	logger    zerolog.Logger
}

func NewBootcampService(
	bootcamps ports.BootcampRepository,
	courses ports.CourseRepository,
	reviews ports.ReviewRepository,
	geocoder ports.Geocoder,
	logger zerolog.Logger,
) *BootcampService {
	return &BootcampService{
		bootcamps: bootcamps,
		courses:   courses,
		reviews:   reviews,
		geocoder:  geocoder,
		logger:    logger,
	}
}

func (s *BootcampService) List(ctx context.Context) ([]*domain.Bootcamp, error) {
	return s.bootcamps.List(ctx)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	return s.bootcamps.FindByID(ctx, id)
}

// Create inserts a bootcamp owned by actor. Publishers may own one bootcamp;
// the existence check runs before the insert.
func (s *BootcampService) Create(ctx context.Context, actor domain.Actor, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	if err := policy.AuthorizeRole("bootcamp", "create", actor, policy.ManageListings...); err != nil {
		return nil, err
	}

	owns, err := s.bootcamps.ExistsForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeCreate(actor, owns); err != nil {
		return nil, err
	}

	b.ID = ""
	b.UserID = actor.ID
	b.CreatedAt = time.Now().UTC()
	b.AverageCost, b.AverageRating = 0, 0
	s.locate(ctx, b)

	created, err := s.bootcamps.Create(ctx, b)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.ID).Msg("failed to create bootcamp")
		return nil, err
	}

	metrics.BootcampsCreatedTotal.WithLabelValues(strconv.FormatBool(created.Location != nil)).Inc()
	s.logger.Info().Str("bootcamp_id", created.ID).Str("user_id", actor.ID).Msg("bootcamp created")
	return created, nil
}

func (s *BootcampService) Update(ctx context.Context, actor domain.Actor, id string, patch func(*domain.Bootcamp)) (*domain.Bootcamp, error) {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation("bootcamp", "update", actor, b, policy.ManageListings...); err != nil {
		return nil, err
	}

	owner, address := b.UserID, b.Address
	patch(b)
	b.ID, b.UserID = id, owner
	if b.Address != address {
		b.Location = nil
		s.locate(ctx, b)
	}
	return s.bootcamps.Update(ctx, b)
}

// Delete removes the bootcamp together with its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeMutation("bootcamp", "delete", actor, b, policy.ManageListings...); err != nil {
		return err
	}

	if err := s.courses.DeleteByBootcamp(ctx, id); err != nil {
		return fmt.Errorf("delete bootcamp courses: %w", err)
	}
	if err := s.reviews.DeleteByBootcamp(ctx, id); err != nil {
		return fmt.Errorf("delete bootcamp reviews: %w", err)
	}
	if err := s.bootcamps.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("bootcamp_id", id).Str("user_id", actor.ID).Msg("bootcamp deleted")
	return nil
}

func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distance float64) ([]*domain.Bootcamp, error) {
	if strings.TrimSpace(zipcode) == "" || math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
		return nil, domain.E(domain.KindInvalidInput, "zipcode and a positive distance are required")
	}
	if s.geocoder == nil {
		return nil, domain.E(domain.KindInternal, "geocoder not configured")
	}

	loc, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", zipcode, err)
	}
	lng, lat := loc.Coordinates[0], loc.Coordinates[1]
	return s.bootcamps.WithinRadius(ctx, lat, lng, distance/earthRadiusMiles)
}

// locate fills b.Location from its address. Geocoding failures are logged and
// leave the bootcamp without a location.
func (s *BootcampService) locate(ctx context.Context, b *domain.Bootcamp) {
	if s.geocoder == nil || strings.TrimSpace(b.Address) == "" {
		return
	}
	loc, err := s.geocoder.Geocode(ctx, b.Address)
	if err != nil {
		s.logger.Warn().Err(err).Str("address", b.Address).Msg("geocoding failed")
		return
	}
	b.Location = loc
}
