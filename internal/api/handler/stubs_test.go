package handler

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	forgotFn   func(ctx context.Context, email, resetURL string) error
	resetFn    func(ctx context.Context, plaintext, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Me(_ context.Context, actor domain.Actor) (*domain.User, error) {
	return &domain.User{ID: actor.ID, Role: actor.Role, Name: "Me"}, nil
}

func (s *stubAuthService) UpdateDetails(_ context.Context, actor domain.Actor, name, email string) (*domain.User, error) {
	return &domain.User{ID: actor.ID, Name: name, Email: email}, nil
}

func (s *stubAuthService) UpdatePassword(context.Context, domain.Actor, string, string) (string, error) {
	return "rotated", nil
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email, resetURL string) error {
	return s.forgotFn(ctx, email, resetURL)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, plaintext, password string) (string, error) {
	return s.resetFn(ctx, plaintext, password)
}

// stubBootcampService applies patches to a single stored bootcamp.
type stubBootcampService struct {
	stored    *domain.Bootcamp
	created   *domain.Bootcamp
	zipcode   string
	distance  float64
	updateErr error
	lastActor domain.Actor
}

func (s *stubBootcampService) List(context.Context) ([]*domain.Bootcamp, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []*domain.Bootcamp{s.stored}, nil
}

func (s *stubBootcampService) Get(_ context.Context, id string) (*domain.Bootcamp, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, domain.ErrBootcampNotFound
	}
	return s.stored, nil
}

func (s *stubBootcampService) Create(_ context.Context, actor domain.Actor, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	s.lastActor = actor
	b.ID, b.UserID = "b1", actor.ID
	s.created = b
	return b, nil
}

func (s *stubBootcampService) Update(_ context.Context, actor domain.Actor, id string, patch func(*domain.Bootcamp)) (*domain.Bootcamp, error) {
	s.lastActor = actor
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.stored == nil || s.stored.ID != id {
		return nil, domain.ErrBootcampNotFound
	}
	patch(s.stored)
	return s.stored, nil
}

func (s *stubBootcampService) Delete(context.Context, domain.Actor, string) error { return nil }

func (s *stubBootcampService) WithinRadius(_ context.Context, zipcode string, distance float64) ([]*domain.Bootcamp, error) {
	s.zipcode, s.distance = zipcode, distance
	return nil, nil
}
