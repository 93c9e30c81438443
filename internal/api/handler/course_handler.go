package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

// CourseHandler serves /courses and the nested /bootcamps/:id/courses routes.
type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// @Summary  List courses
// @Tags     courses
// @Produce  json
// @Success  200  {object}  dataResponse
// @Router   /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return respondList(c, courses)
}

// @Summary  List the courses of a bootcamp
// @Tags     courses
// @Produce  json
// @Param    id   path      string  true  "Bootcamp ID"
// @Success  200  {object}  dataResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /bootcamps/{id}/courses [get]
func (h *CourseHandler) ListByBootcamp(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondList(c, courses)
}

func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, course)
}

// Add creates a course under the bootcamp in the path. The caller must be
// able to modify that bootcamp.
//
// @Summary   Add a course to a bootcamp
// @Tags      courses
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string               true  "Bootcamp ID"
// @Param     body  body      createCourseRequest  true  "Course"
// @Success   201   {object}  dataResponse
// @Failure   403   {object}  ErrorResponse
// @Failure   404   {object}  ErrorResponse
// @Router    /bootcamps/{id}/courses [post]
func (h *CourseHandler) Add(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Add(c.Request().Context(), actor, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, course)
}

func (h *CourseHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Update(c.Request().Context(), actor, c.Param("id"), req.apply)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.courses.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, struct{}{})
}
