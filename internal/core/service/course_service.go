package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/policy"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type CourseService struct {
	courses   ports.CourseRepository
	bootcamps ports.BootcampRepository
	logger    zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, bootcamps ports.BootcampRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps, logger: logger}
}

// List returns every course, or only those of bootcampID when it is set.
func (s *CourseService) List(ctx context.Context, bootcampID string) ([]*domain.Course, error) {
	if bootcampID != "" {
		if _, err := s.bootcamps.FindByID(ctx, bootcampID); err != nil {
			return nil, err
		}
	}
	return s.courses.List(ctx, bootcampID)
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

// Add creates a course under a bootcamp the actor may modify.
func (s *CourseService) Add(ctx context.Context, actor domain.Actor, bootcampID string, c *domain.Course) (*domain.Course, error) {
	b, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation("course", "create", actor, b, policy.ManageListings...); err != nil {
		return nil, err
	}

	c.ID = ""
	c.BootcampID = b.ID
	c.UserID = actor.ID
	c.CreatedAt = now()

	created, err := s.courses.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, b.ID)
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, actor domain.Actor, id string, patch func(*domain.Course)) (*domain.Course, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation("course", "update", actor, c, policy.ManageListings...); err != nil {
		return nil, err
	}

	owner, bootcamp := c.UserID, c.BootcampID
	patch(c)
	c.ID, c.UserID, c.BootcampID = id, owner, bootcamp

	updated, err := s.courses.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, bootcamp)
	return updated, nil
}

func (s *CourseService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeMutation("course", "delete", actor, c, policy.ManageListings...); err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, c.BootcampID)
	return nil
}

// refresh recomputes bootcamp averages; a failure only leaves them stale.
func (s *CourseService) refresh(ctx context.Context, bootcampID string) {
	if err := s.bootcamps.RefreshAverages(ctx, bootcampID); err != nil {
		s.logger.Warn().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to refresh averages")
	}
}
