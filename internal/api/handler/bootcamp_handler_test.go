package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/api/middleware"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

func withUser(c echo.Context, id string, role domain.Role) echo.Context {
	c.Set(middleware.UserKey, &domain.User{ID: id, Role: role})
	return c
}

func TestBootcampHandler_Create(t *testing.T) {
	e := newEcho()
	svc := &stubBootcampService{}
	h := NewBootcampHandler(svc)

	body := `{"name":"Devworks","description":"Full stack","address":"Boston MA","careers":["Web Development","UI/UX"],"housing":true}`
	rec := httptest.NewRecorder()
	c := withUser(e.NewContext(jsonRequest(http.MethodPost, "/", body), rec), "pub-1", domain.RolePublisher)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastActor.ID != "pub-1" || !svc.created.Housing || len(svc.created.Careers) != 2 {
		t.Fatalf("unexpected create: actor=%+v bootcamp=%+v", svc.lastActor, svc.created)
	}
}

func TestBootcampHandler_Create_RejectsUnknownCareer(t *testing.T) {
	e := newEcho()
	h := NewBootcampHandler(&stubBootcampService{})

	body := `{"name":"X","description":"d","address":"a","careers":["Underwater Basket Weaving"]}`
	c := withUser(e.NewContext(jsonRequest(http.MethodPost, "/", body), httptest.NewRecorder()), "pub-1", domain.RolePublisher)

	if err := h.Create(c); domain.KindOf(err) != domain.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestBootcampHandler_Update_PartialPatch(t *testing.T) {
	e := newEcho()
	svc := &stubBootcampService{stored: &domain.Bootcamp{ID: "b1", Name: "Orig", Description: "keep me", Housing: true}}
	h := NewBootcampHandler(svc)

	rec := httptest.NewRecorder()
	c := withUser(e.NewContext(jsonRequest(http.MethodPut, "/", `{"name":"Renamed","housing":false}`), rec), "pub-1", domain.RolePublisher)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.stored.Name != "Renamed" || svc.stored.Description != "keep me" || svc.stored.Housing {
		t.Fatalf("unexpected patch result: %+v", svc.stored)
	}
}

func TestBootcampHandler_Update_Forbidden(t *testing.T) {
	e := newEcho()
	svc := &stubBootcampService{
		stored:    &domain.Bootcamp{ID: "b1"},
		updateErr: domain.E(domain.KindForbidden, "user pub-2 is not authorized to update this bootcamp"),
	}
	h := NewBootcampHandler(svc)

	c := withUser(e.NewContext(jsonRequest(http.MethodPut, "/", `{"name":"x"}`), httptest.NewRecorder()), "pub-2", domain.RolePublisher)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBootcampHandler_WithinRadius(t *testing.T) {
	e := newEcho()
	svc := &stubBootcampService{}
	h := NewBootcampHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("zipcode", "distance")
	c.SetParamValues("02118", "12.5")

	if err := h.WithinRadius(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.zipcode != "02118" || svc.distance != 12.5 {
		t.Fatalf("unexpected args %q %v", svc.zipcode, svc.distance)
	}

	var resp struct {
		Success bool              `json:"success"`
		Count   int               `json:"count"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Count != 0 || resp.Data == nil {
		t.Fatalf("expected empty list envelope, got %s", rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("zipcode", "distance")
	c.SetParamValues("02118", "far")
	if err := h.WithinRadius(c); domain.KindOf(err) != domain.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
