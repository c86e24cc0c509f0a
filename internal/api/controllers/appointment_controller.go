package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/internal/models/request_models"
	"aurora/internal/services"
	"aurora/pkg/middleware"
	"aurora/pkg/utils"
)

type AppointmentController struct {
	appointmentService services.AppointmentServiceInterface
}

func NewAppointmentController(appointmentService services.AppointmentServiceInterface) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
	}
}

// CreateAppointment godoc
// @Summary Request an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body request_models.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} utils.APIResponse{data=response_models.AppointmentResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /appointments [post]
func (a *AppointmentController) CreateAppointment(c *gin.Context) {
	var req request_models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	appointment, err := a.appointmentService.CreateAppointment(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, appointment, "Appointment requested")
}

// ListAppointments godoc
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=[]response_models.AppointmentResponse}
// @Security BearerAuth
// @Router /appointments [get]
func (a *AppointmentController) ListAppointments(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	appointments, err := a.appointmentService.ListAppointments(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, appointments, "Appointments fetched successfully")
}

// GetAppointment godoc
// @Summary Get an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} utils.APIResponse{data=response_models.AppointmentResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /appointments/{id} [get]
func (a *AppointmentController) GetAppointment(c *gin.Context) {
	appointment, err := a.appointmentService.GetAppointment(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, appointment, "Appointment fetched successfully")
}

// UpdateAppointment godoc
// @Summary Update an appointment
// @Description Owners may reschedule or cancel; only staff may move to other statuses
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body request_models.UpdateAppointmentRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.AppointmentResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /appointments/{id} [put]
func (a *AppointmentController) UpdateAppointment(c *gin.Context) {
	var req request_models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	appointment, err := a.appointmentService.UpdateAppointment(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, appointment, "Appointment updated successfully")
}

// DeleteAppointment godoc
// @Summary Delete an appointment
// @Tags Appointments
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /appointments/{id} [delete]
func (a *AppointmentController) DeleteAppointment(c *gin.Context) {
	if err := a.appointmentService.DeleteAppointment(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
