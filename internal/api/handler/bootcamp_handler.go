package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type BootcampHandler struct {
	bootcamps ports.BootcampService
}

func NewBootcampHandler(bootcamps ports.BootcampService) *BootcampHandler {
	return &BootcampHandler{bootcamps: bootcamps}
}

// List returns every bootcamp.
//
// @Summary  List bootcamps
// @Tags     bootcamps
// @Produce  json
// @Success  200  {object}  dataResponse
// @Router   /bootcamps [get]
func (h *BootcampHandler) List(c echo.Context) error {
	bootcamps, err := h.bootcamps.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, bootcamps)
}

// @Summary  Get a bootcamp
// @Tags     bootcamps
// @Produce  json
// @Param    id   path      string  true  "Bootcamp ID"
// @Success  200  {object}  dataResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /bootcamps/{id} [get]
func (h *BootcampHandler) Get(c echo.Context) error {
	b, err := h.bootcamps.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Create registers a bootcamp owned by the caller. Publishers may own one.
//
// @Summary   Create a bootcamp
// @Tags      bootcamps
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      createBootcampRequest  true  "Bootcamp"
// @Success   201   {object}  dataResponse
// @Failure   400   {object}  ErrorResponse
// @Failure   403   {object}  ErrorResponse
// @Failure   409   {object}  ErrorResponse
// @Router    /bootcamps [post]
func (h *BootcampHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createBootcampRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.bootcamps.Create(c.Request().Context(), actor, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, b)
}

// @Summary   Update a bootcamp
// @Tags      bootcamps
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                 true  "Bootcamp ID"
// @Param     body  body      updateBootcampRequest  true  "Fields to change"
// @Success   200   {object}  dataResponse
// @Failure   403   {object}  ErrorResponse
// @Failure   404   {object}  ErrorResponse
// @Router    /bootcamps/{id} [put]
func (h *BootcampHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateBootcampRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.bootcamps.Update(c.Request().Context(), actor, c.Param("id"), req.apply)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Delete removes a bootcamp with its courses and reviews.
//
// @Summary   Delete a bootcamp
// @Tags      bootcamps
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Bootcamp ID"
// @Success   200  {object}  dataResponse
// @Failure   403  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Router    /bootcamps/{id} [delete]
func (h *BootcampHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.bootcamps.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, struct{}{})
}

// WithinRadius finds bootcamps within distance miles of a zipcode.
//
// @Summary  Bootcamps within a radius
// @Tags     bootcamps
// @Produce  json
// @Param    zipcode   path      string  true  "Zipcode"
// @Param    distance  path      number  true  "Distance in miles"
// @Success  200       {object}  dataResponse
// @Failure  400       {object}  ErrorResponse
// @Router   /bootcamps/radius/{zipcode}/{distance} [get]
func (h *BootcampHandler) WithinRadius(c echo.Context) error {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		return domain.E(domain.KindInvalidInput, "distance must be a number")
	}

	bootcamps, err := h.bootcamps.WithinRadius(c.Request().Context(), c.Param("zipcode"), distance)
	if err != nil {
		return err
	}
	return respondList(c, bootcamps)
}
