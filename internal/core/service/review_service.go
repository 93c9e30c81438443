package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/policy"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type ReviewService struct {
	reviews   ports.ReviewRepository
	bootcamps ports.BootcampRepository
	logger    zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, bootcamps ports.BootcampRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, bootcamps: bootcamps, logger: logger}
}

func (s *ReviewService) List(ctx context.Context, bootcampID string) ([]*domain.Review, error) {
	if bootcampID != "" {
		if _, err := s.bootcamps.FindByID(ctx, bootcampID); err != nil {
			return nil, err
		}
	}
	return s.reviews.List(ctx, bootcampID)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

// Add records a review by actor on an existing bootcamp. A second review by
// the same user on the same bootcamp is rejected by the store.
func (s *ReviewService) Add(ctx context.Context, actor domain.Actor, bootcampID string, r *domain.Review) (*domain.Review, error) {
	if err := policy.AuthorizeRole("review", "create", actor, policy.ManageReviews...); err != nil {
		return nil, err
	}
	b, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}

	r.ID = ""
	r.BootcampID = b.ID
	r.UserID = actor.ID
	r.CreatedAt = now()

	created, err := s.reviews.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, b.ID)
	return created, nil
}

func (s *ReviewService) Update(ctx context.Context, actor domain.Actor, id string, patch func(*domain.Review)) (*domain.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation("review", "update", actor, r, policy.ManageReviews...); err != nil {
		return nil, err
	}

	owner, bootcamp := r.UserID, r.BootcampID
	patch(r)
	r.ID, r.UserID, r.BootcampID = id, owner, bootcamp

	updated, err := s.reviews.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, bootcamp)
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeMutation("review", "delete", actor, r, policy.ManageReviews...); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, r.BootcampID)
	return nil
}

func (s *ReviewService) refresh(ctx context.Context, bootcampID string) {
	if err := s.bootcamps.RefreshAverages(ctx, bootcampID); err != nil {
		s.logger.Warn().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to refresh averages")
	}
}

func now() time.Time { return time.Now().UTC() }
