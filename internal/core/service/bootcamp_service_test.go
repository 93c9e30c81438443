package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

var (
	publisher      = domain.Actor{ID: "pub-1", Role: domain.RolePublisher}
	otherPublisher = domain.Actor{ID: "pub-2", Role: domain.RolePublisher}
	admin          = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	plainUser      = domain.Actor{ID: "user-1", Role: domain.RoleUser}
)

type bootcampFixture struct {
	svc       *BootcampService
	bootcamps *stubBootcampRepo
	courses   *stubCourseRepo
	reviews   *stubReviewRepo
}

func newBootcampFixture(geo *stubGeocoder) *bootcampFixture {
	f := &bootcampFixture{
		bootcamps: newStubBootcampRepo(),
		courses:   newStubCourseRepo(),
		reviews:   newStubReviewRepo(),
	}
	var geocoder ports.Geocoder
	if geo != nil {
		geocoder = geo
	}
	f.svc = NewBootcampService(f.bootcamps, f.courses, f.reviews, geocoder, nopLogger())
	return f
}

func TestBootcampService_Create_SetsOwnerAndLocation(t *testing.T) {
	f := newBootcampFixture(&stubGeocoder{loc: domain.NewPoint(42.36, -71.06)})

	b, err := f.svc.Create(context.Background(), publisher, &domain.Bootcamp{
		Name: "Devworks", Address: "233 Bay State Rd Boston MA 02215", UserID: "spoofed", AverageRating: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.UserID != publisher.ID {
		t.Fatalf("owner = %q, want %q", b.UserID, publisher.ID)
	}
	if b.AverageRating != 0 {
		t.Fatalf("client-supplied averages must be ignored")
	}
	if b.Location == nil || b.Location.Coordinates[0] != -71.06 {
		t.Fatalf("expected geocoded location, got %+v", b.Location)
	}
}

func TestBootcampService_Create_GeocodeFailureIsNotFatal(t *testing.T) {
	f := newBootcampFixture(&stubGeocoder{err: errors.New("quota exceeded")})

	b, err := f.svc.Create(context.Background(), publisher, &domain.Bootcamp{Name: "X", Address: "somewhere"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Location != nil {
		t.Fatalf("expected no location")
	}
}

func TestBootcampService_Create_OnePerPublisher(t *testing.T) {
	f := newBootcampFixture(nil)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, publisher, &domain.Bootcamp{Name: "First"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.svc.Create(ctx, publisher, &domain.Bootcamp{Name: "Second"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.bootcamps.byID) != 1 {
		t.Fatalf("second bootcamp must not be stored")
	}
}

func TestBootcampService_Create_AdminMayOwnMany(t *testing.T) {
	f := newBootcampFixture(nil)
	ctx := context.Background()

	for _, name := range []string{"A", "B"} {
		if _, err := f.svc.Create(ctx, admin, &domain.Bootcamp{Name: name}); err != nil {
			t.Fatalf("admin create %s: %v", name, err)
		}
	}
}

func TestBootcampService_Create_UserRoleForbidden(t *testing.T) {
	f := newBootcampFixture(nil)

	if _, err := f.svc.Create(context.Background(), plainUser, &domain.Bootcamp{Name: "X"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBootcampService_Update(t *testing.T) {
	f := newBootcampFixture(nil)
	ctx := context.Background()
	b, _ := f.svc.Create(ctx, publisher, &domain.Bootcamp{Name: "Orig"})
	before := *f.bootcamps.byID[b.ID]

	for i := 0; i < 2; i++ {
		_, err := f.svc.Update(ctx, otherPublisher, b.ID, func(x *domain.Bootcamp) { x.Name = "Hijacked" })
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("attempt %d: expected forbidden, got %v", i, err)
		}
	}
	if !reflect.DeepEqual(before, *f.bootcamps.byID[b.ID]) {
		t.Fatalf("resource changed after denied update")
	}

	updated, err := f.svc.Update(ctx, publisher, b.ID, func(x *domain.Bootcamp) {
		x.Name = "Renamed"
		x.UserID = "someone-else"
	})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Renamed" || updated.UserID != publisher.ID {
		t.Fatalf("unexpected bootcamp: %+v", updated)
	}

	if _, err := f.svc.Update(ctx, admin, b.ID, func(x *domain.Bootcamp) { x.Housing = true }); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestBootcampService_Update_AddressChangeDropsStaleLocation(t *testing.T) {
	geo := &stubGeocoder{loc: domain.NewPoint(42.36, -71.06)}
	f := newBootcampFixture(geo)
	ctx := context.Background()
	b, err := f.svc.Create(ctx, publisher, &domain.Bootcamp{Name: "Movers", Address: "Boston MA"})
	if err != nil || b.Location == nil {
		t.Fatalf("create: %v, location=%+v", err, b)
	}

	geo.loc, geo.err = nil, errors.New("quota exceeded")
	updated, err := f.svc.Update(ctx, publisher, b.ID, func(x *domain.Bootcamp) { x.Address = "Denver CO" })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != nil || f.bootcamps.byID[b.ID].Location != nil {
		t.Fatalf("location of the old address survived: %+v", f.bootcamps.byID[b.ID].Location)
	}
}

func TestBootcampService_Update_NotFound(t *testing.T) {
	f := newBootcampFixture(nil)

	_, err := f.svc.Update(context.Background(), admin, "missing", func(*domain.Bootcamp) {})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBootcampService_Delete_Cascades(t *testing.T) {
	f := newBootcampFixture(nil)
	ctx := context.Background()
	b, _ := f.svc.Create(ctx, publisher, &domain.Bootcamp{Name: "Doomed"})
	_, _ = f.courses.Create(ctx, &domain.Course{BootcampID: b.ID, UserID: publisher.ID})
	_, _ = f.courses.Create(ctx, &domain.Course{BootcampID: "other"})
	_, _ = f.reviews.Create(ctx, &domain.Review{BootcampID: b.ID, UserID: plainUser.ID})

	if err := f.svc.Delete(ctx, otherPublisher, b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(f.courses.byID) != 2 || len(f.reviews.byID) != 1 {
		t.Fatalf("denied delete must not cascade")
	}

	if err := f.svc.Delete(ctx, publisher, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.bootcamps.byID[b.ID]; ok {
		t.Fatalf("bootcamp still present")
	}
	if len(f.courses.byID) != 1 || len(f.reviews.byID) != 0 {
		t.Fatalf("cascade left %d courses, %d reviews", len(f.courses.byID), len(f.reviews.byID))
	}
}

func TestBootcampService_WithinRadius(t *testing.T) {
	f := newBootcampFixture(&stubGeocoder{loc: domain.NewPoint(42.35, -71.06)})
	f.bootcamps.near = []*domain.Bootcamp{{ID: "b1"}}

	got, err := f.svc.WithinRadius(context.Background(), "02118", 10)
	if err != nil {
		t.Fatalf("radius: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 bootcamp, got %d", len(got))
	}
	if want := 10 / earthRadiusMiles; math.Abs(f.bootcamps.lastRad-want) > 1e-12 {
		t.Fatalf("radius = %v, want %v", f.bootcamps.lastRad, want)
	}

	for _, d := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := f.svc.WithinRadius(context.Background(), "02118", d); domain.KindOf(err) != domain.KindInvalidInput {
			t.Fatalf("distance %v: expected invalid input, got %v", d, err)
		}
	}
}

func TestBootcampService_WithinRadius_UnknownZipcode(t *testing.T) {
	f := newBootcampFixture(&stubGeocoder{err: domain.ErrLocationNotFound})

	_, err := f.svc.WithinRadius(context.Background(), "00000", 10)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	var de *domain.Error
	if !errors.As(err, &de) || de.Msg != domain.ErrLocationNotFound.Msg {
		t.Fatalf("unexpected error %v", err)
	}
}
