package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/policy"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

// UserService is the admin user management use case.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if err := policy.AuthorizeRole("user", "list", actor, policy.ManageUsers...); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if err := policy.AuthorizeRole("user", "get", actor, policy.ManageUsers...); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor domain.Actor, in ports.UserInput) (*domain.User, error) {
	if err := policy.AuthorizeRole("user", "create", actor, policy.ManageUsers...); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	u, err := createUser(ctx, s.repo, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Str("by", actor.ID).Msg("user created by admin")
	return u, nil
}

// Update applies the non-empty fields of in.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UserInput) (*domain.User, error) {
	if err := policy.AuthorizeRole("user", "update", actor, policy.ManageUsers...); err != nil {
		return nil, err
	}

	var fields ports.UserFields
	if name := strings.TrimSpace(in.Name); name != "" {
		fields.Name = &name
	}
	if in.Email != "" {
		email := normalizeEmail(in.Email)
		fields.Email = &email
	}
	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, domain.E(domain.KindInvalidInput, "unknown role")
		}
		fields.Role = &in.Role
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := policy.AuthorizeRole("user", "delete", actor, policy.ManageUsers...); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("by", actor.ID).Msg("user deleted by admin")
	return nil
}
