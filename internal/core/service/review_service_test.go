package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

func TestReviewService_Add(t *testing.T) {
	bootcamps, reviews := newStubBootcampRepo(), newStubReviewRepo()
	svc := NewReviewService(reviews, bootcamps, nopLogger())
	b := seedBootcamp(t, bootcamps, publisher)
	ctx := context.Background()

	if _, err := svc.Add(ctx, publisher, b.ID, &domain.Review{Title: "Self promo", Rating: 10}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("publishers may not review, got %v", err)
	}

	r, err := svc.Add(ctx, plainUser, b.ID, &domain.Review{Title: "Great", Rating: 9})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if r.UserID != plainUser.ID || r.BootcampID != b.ID {
		t.Fatalf("unexpected review: %+v", r)
	}

	if _, err := svc.Add(ctx, plainUser, b.ID, &domain.Review{Title: "Again", Rating: 1}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on second review, got %v", err)
	}
	if _, err := svc.Add(ctx, plainUser, "missing", &domain.Review{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReviewService_UpdateDelete_Policy(t *testing.T) {
	bootcamps, reviews := newStubBootcampRepo(), newStubReviewRepo()
	svc := NewReviewService(reviews, bootcamps, nopLogger())
	b := seedBootcamp(t, bootcamps, publisher)
	ctx := context.Background()
	r, _ := svc.Add(ctx, plainUser, b.ID, &domain.Review{Title: "Great", Rating: 9})

	stranger := domain.Actor{ID: "user-2", Role: domain.RoleUser}
	if _, err := svc.Update(ctx, stranger, r.ID, func(x *domain.Review) { x.Rating = 1 }); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, r.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if reviews.byID[r.ID].Rating != 9 {
		t.Fatalf("review changed after denied update")
	}

	updated, err := svc.Update(ctx, plainUser, r.ID, func(x *domain.Review) { x.Rating = 7 })
	if err != nil || updated.Rating != 7 {
		t.Fatalf("owner update: %+v, %v", updated, err)
	}

	if err := svc.Delete(ctx, admin, r.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(reviews.byID) != 0 {
		t.Fatalf("review not deleted")
	}
}
