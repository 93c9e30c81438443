package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
	"github.com/devcamper/bootcamp-api/internal/core/token"
	"github.com/devcamper/bootcamp-api/internal/pkg/metrics"
)

const (
	defaultResetTTL = 10 * time.Minute
	minPasswordLen  = 6
	resetSubject    = "Password reset token"
)

// SessionTokens is the subset of token.SessionIssuer the service needs.
type SessionTokens interface {
	Issue(actorID string) (string, error)
	Verify(raw string) (string, error)
}

// AuthService implements registration, login and the password reset lifecycle.
type AuthService struct {
	repo     ports.UserRepository
	sessions SessionTokens
	mailer   ports.Mailer
	locker   ports.Locker
	resetTTL time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	sessions SessionTokens,
	mailer ports.Mailer,
	locker ports.Locker,
	resetTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		mailer:   mailer,
		locker:   locker,
		resetTTL: resetTTL,
		now:      time.Now,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	// admin accounts are only created by another admin
	if in.Role != domain.RoleUser && in.Role != domain.RolePublisher {
		return "", nil, domain.E(domain.KindInvalidInput, "role must be user or publisher")
	}

	user, err := createUser(ctx, s.repo, ports.UserInput{
		Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role,
	})
	if err != nil {
		return "", nil, err
	}

	tok, err := s.sessions.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return tok, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.E(domain.KindInvalidInput, "please provide an email and password")
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.sessions.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return tok, user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, raw string) (*domain.User, error) {
	id, err := s.sessions.Verify(raw)
	if err != nil {
		return nil, domain.E(domain.KindUnauthenticated, "not authorized to access this route")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.KindUnauthenticated, "not authorized to access this route")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	return s.repo.FindByID(ctx, actor.ID)
}

func (s *AuthService) UpdateDetails(ctx context.Context, actor domain.Actor, name, email string) (*domain.User, error) {
	var fields ports.UserFields
	if name != "" {
		fields.Name = &name
	}
	if email != "" {
		e := normalizeEmail(email)
		fields.Email = &e
	}
	return s.repo.Update(ctx, actor.ID, fields)
}

func (s *AuthService) UpdatePassword(ctx context.Context, actor domain.Actor, current, next string) (string, error) {
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return "", domain.E(domain.KindUnauthenticated, "password is incorrect")
	}

	hash, err := hashPassword(next)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.Update(ctx, user.ID, ports.UserFields{PasswordHash: &hash}); err != nil {
		return "", err
	}
	return s.sessions.Issue(user.ID)
}

// ForgotPassword stores a fresh reset token for the user and mails it. When
// delivery fails the stored token is cleared again so no undeliverable token
// is left behind.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURL string) error {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.E(domain.KindNotFound, "there is no user with that email")
		}
		return err
	}

	release, err := s.locker.Acquire(ctx, user.ID)
	if err != nil {
		return err
	}
	defer release()

	plain, hash, err := token.NewResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.repo.SetResetToken(ctx, user.ID, hash, s.now().Add(s.resetTTL)); err != nil {
		return err
	}

	body := "You are receiving this email because you (or someone else) requested a password reset. " +
		"Please make a PUT request to:\n\n" + resetURL + plain
	if err := s.mailer.Send(ctx, user.Email, resetSubject, body); err != nil {
		metrics.ResetDeliveriesTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset email failed, rolling back token")

		if rbErr := s.repo.ClearResetToken(context.WithoutCancel(ctx), user.ID, hash); rbErr != nil {
			s.log.Error().Err(rbErr).Str("user_id", user.ID).Msg("reset token rollback failed")
			return errors.Join(domain.ErrEmailNotSent, rbErr)
		}
		return domain.ErrEmailNotSent
	}

	metrics.ResetDeliveriesTotal.WithLabelValues("sent").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("reset email sent")
	return nil
}

// ResetPassword consumes a reset token and sets a new password in one store
// operation. Unknown and expired tokens are indistinguishable to the caller.
func (s *AuthService) ResetPassword(ctx context.Context, plaintext, password string) (string, error) {
	if plaintext == "" {
		return "", domain.E(domain.KindInvalidToken, "invalid token")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := s.repo.ConsumeResetToken(ctx, token.HashResetToken(plaintext), s.now(), hash)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.ResetsConsumedTotal.WithLabelValues("invalid").Inc()
			return "", domain.E(domain.KindInvalidToken, "invalid token")
		}
		return "", err
	}
	metrics.ResetsConsumedTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("password reset")

	return s.sessions.Issue(user.ID)
}

func createUser(ctx context.Context, repo ports.UserRepository, in ports.UserInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.E(domain.KindInvalidInput, "name and email are required")
	}
	if !in.Role.Valid() {
		return nil, domain.E(domain.KindInvalidInput, "unknown role")
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return repo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", domain.E(domain.KindInvalidInput, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
