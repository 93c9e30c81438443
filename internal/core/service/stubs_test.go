package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int

	clearErr error // if set, ClearResetToken returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.ResetPasswordExpire != nil {
		exp := *u.ResetPasswordExpire
		clone.ResetPasswordExpire = &exp
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	if c.ID == "" {
		r.nextID++
		c.ID = strconv.Itoa(r.nextID)
	}
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, f ports.UserFields) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if f.Name != nil {
		u.Name = *f.Name
	}
	if f.Email != nil {
		u.Email = *f.Email
	}
	if f.Role != nil {
		u.Role = *f.Role
	}
	if f.PasswordHash != nil {
		u.PasswordHash = *f.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, hash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetPasswordToken = hash
	u.ResetPasswordExpire = &expiresAt
	return nil
}

func (r *stubUserRepo) ClearResetToken(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clearErr != nil {
		return r.clearErr
	}
	if u, ok := r.users[id]; ok && u.ResetPasswordToken == hash {
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
	}
	return nil
}

// ConsumeResetToken mirrors the single find-one-and-update of the Mongo repo.
func (r *stubUserRepo) ConsumeResetToken(_ context.Context, hash string, now time.Time, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetPasswordToken == hash && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			u.PasswordHash = passwordHash
			u.ResetPasswordToken = ""
			u.ResetPasswordExpire = nil
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrInvalidToken
}

type stubBootcampRepo struct {
	byID      map[string]*domain.Bootcamp
	nextID    int
	refreshed []string
	near      []*domain.Bootcamp
	lastRad   float64
}

func newStubBootcampRepo() *stubBootcampRepo {
	return &stubBootcampRepo{byID: make(map[string]*domain.Bootcamp)}
}

func (r *stubBootcampRepo) Create(_ context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	r.nextID++
	clone := *b
	clone.ID = "b" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBootcampRepo) FindByID(_ context.Context, id string) (*domain.Bootcamp, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBootcampNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBootcampRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	for _, b := range r.byID {
		if b.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBootcampRepo) List(_ context.Context) ([]*domain.Bootcamp, error) {
	out := make([]*domain.Bootcamp, 0, len(r.byID))
	for _, b := range r.byID {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBootcampRepo) WithinRadius(_ context.Context, _, _, radius float64) ([]*domain.Bootcamp, error) {
	r.lastRad = radius
	return r.near, nil
}

func (r *stubBootcampRepo) Update(_ context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	if _, ok := r.byID[b.ID]; !ok {
		return nil, domain.ErrBootcampNotFound
	}
	clone := *b
	r.byID[b.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBootcampRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBootcampNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubBootcampRepo) RefreshAverages(_ context.Context, id string) error {
	r.refreshed = append(r.refreshed, id)
	return nil
}

type stubCourseRepo struct {
	byID   map[string]*domain.Course
	nextID int
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{byID: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.nextID++
	clone := *c
	clone.ID = "c" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) List(_ context.Context, bootcampID string) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, c := range r.byID {
		if bootcampID == "" || c.BootcampID == bootcampID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) (*domain.Course, error) {
	clone := *c
	r.byID[c.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	for id, c := range r.byID {
		if c.BootcampID == bootcampID {
			delete(r.byID, id)
		}
	}
	return nil
}

type stubReviewRepo struct {
	byID   map[string]*domain.Review
	nextID int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byID: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	for _, existing := range r.byID {
		if existing.BootcampID == rv.BootcampID && existing.UserID == rv.UserID {
			return nil, domain.ErrReviewExists
		}
	}
	r.nextID++
	clone := *rv
	clone.ID = "r" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r *stubReviewRepo) List(_ context.Context, bootcampID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rv := range r.byID {
		if bootcampID == "" || rv.BootcampID == bootcampID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	clone := *rv
	r.byID[rv.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubReviewRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	for id, rv := range r.byID {
		if rv.BootcampID == bootcampID {
			delete(r.byID, id)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type sentMail struct {
	to, subject, body string
}

type stubMailer struct {
	err  error
	sent []sentMail
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type stubLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newStubLocker() *stubLocker { return &stubLocker{held: make(map[string]bool)} }

func (l *stubLocker) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrResetInProgress
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

type stubGeocoder struct {
	loc *domain.Location
	err error
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (*domain.Location, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.loc, nil
}

var errStore = errors.New("store unavailable")

func nopLogger() zerolog.Logger { return zerolog.Nop() }
