package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviews.List(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return respondList(c, reviews)
}

func (h *ReviewHandler) ListByBootcamp(c echo.Context) error {
	reviews, err := h.reviews.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondList(c, reviews)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviews.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}

// Add records the caller's review of the bootcamp in the path. One review per
// user and bootcamp.
//
// @Summary   Review a bootcamp
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string               true  "Bootcamp ID"
// @Param     body  body      createReviewRequest  true  "Review"
// @Success   201   {object}  dataResponse
// @Failure   404   {object}  ErrorResponse
// @Failure   409   {object}  ErrorResponse
// @Router    /bootcamps/{id}/reviews [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Add(c.Request().Context(), actor, c.Param("id"), &domain.Review{
		Title: req.Title, Text: req.Text, Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Update(c.Request().Context(), actor, c.Param("id"), req.apply)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, struct{}{})
}
