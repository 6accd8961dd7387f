package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
)

type AlertHandler struct {
	service ports.AlertService
}

func NewAlertHandler(service ports.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

type createAlertRequest struct {
	UserID  string `json:"userId"  validate:"required"`
	Message string `json:"message" validate:"required"`
}

type classifyAlertRequest struct {
	Type string `json:"type" validate:"required"`
}

type alertResponse struct {
	Success bool          `json:"success"`
	Alert   *domain.Alert `json:"alert"`
}

type alertsResponse struct {
	Success bool            `json:"success"`
	Alerts  []*domain.Alert `json:"alerts"`
}

// Create submits a new alert on behalf of a user.
//
// @Summary      Create an alert
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAlertRequest  true  "Submitting user id and message"
// @Success      201   {object}  alertResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/alerts [post]
func (h *AlertHandler) Create(c echo.Context) error {
	var req createAlertRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	alert, err := h.service.Create(c.Request().Context(), req.UserID, req.Message)
	if err != nil {
		return failErr(c, err)
	}

	return c.JSON(http.StatusCreated, alertResponse{Success: true, Alert: alert})
}

// List returns alerts, optionally filtered by organization.
//
// @Summary      List alerts
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        organizationId  query     string  false  "Organization id filter"
// @Success      200             {object}  alertsResponse
// @Failure      400             {object}  errorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c echo.Context) error {
	alerts, err := h.service.List(c.Request().Context(), c.QueryParam("organizationId"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, alertsResponse{Success: true, Alerts: alerts})
}

// Classify assigns a type to an alert and marks it Classified.
//
// @Summary      Classify an alert
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Alert id"
// @Param        body  body      classifyAlertRequest  true  "Classification type"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/alerts/{id} [put]
func (h *AlertHandler) Classify(c echo.Context) error {
	var req classifyAlertRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.service.Classify(c.Request().Context(), c.Param("id"), req.Type); err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListClassified returns alerts awaiting review.
//
// @Summary      List classified alerts
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        organizationId  query     string  false  "Organization id filter"
// @Success      200             {object}  alertsResponse
// @Failure      400             {object}  errorResponse
// @Router       /api/it/review [get]
func (h *AlertHandler) ListClassified(c echo.Context) error {
	alerts, err := h.service.ListClassified(c.Request().Context(), c.QueryParam("organizationId"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, alertsResponse{Success: true, Alerts: alerts})
}

// Review marks an alert Reviewed.
//
// @Summary      Review an alert
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Alert id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/alerts/{id}/review [put]
func (h *AlertHandler) Review(c echo.Context) error {
	if err := h.service.Review(c.Request().Context(), c.Param("id")); err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
