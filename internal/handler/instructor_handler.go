package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/registrar-labs/course-registry-api/internal/service"
	"github.com/registrar-labs/course-registry-api/pkg/response"
)

// InstructorHandler exposes instructor endpoints.
type InstructorHandler struct {
	instructors *service.InstructorService
}

// NewInstructorHandler constructs InstructorHandler.
func NewInstructorHandler(instructors *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructors: instructors}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Param detail query string false "Projection: full or short"
// @Param page query int false "Page (omit for the full set)"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	instructors, pagination, err := h.instructors.List(c.Request.Context(), c.Query("detail"), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "", instructors, pagination)
}

// Get godoc
// @Summary Get one instructor
// @Tags Instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	instructor, err := h.instructors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", instructor)
}

// Create godoc
// @Summary Create instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Router /instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	instructor, err := h.instructors.Create(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, service.MsgInstructorCreated, instructor)
}

// Update godoc
// @Summary Edit instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [patch]
func (h *InstructorHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := bindBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	instructor, err := h.instructors.Edit(c.Request.Context(), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, service.MsgUpdated("instructor", id), instructor)
}

// Delete godoc
// @Summary Delete instructor
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [delete]
func (h *InstructorHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.instructors.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, service.MsgDeleted("instructor", id), nil)
}

// Courses godoc
// @Summary Get an instructor's courses
// @Tags Instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/courses [get]
func (h *InstructorHandler) Courses(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.instructors.Courses(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", result)
}
