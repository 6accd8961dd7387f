package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
)

type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

type createTicketRequest struct {
	AlertID     string `json:"alertId"     validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updateTicketRequest struct {
	Status string `json:"status" validate:"required"`
}

type ticketResponse struct {
	Success bool           `json:"success"`
	Ticket  *domain.Ticket `json:"ticket"`
}

type ticketsResponse struct {
	Success bool             `json:"success"`
	Tickets []*domain.Ticket `json:"tickets"`
}

// Create derives a ticket from an existing alert.
//
// @Summary      Create a ticket from an alert
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Source alert id and description"
// @Success      201   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/ticket [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), req.AlertID, req.Description)
	if err != nil {
		return failErr(c, err)
	}

	return c.JSON(http.StatusCreated, ticketResponse{Success: true, Ticket: ticket})
}

// List returns tickets, optionally filtered by organization.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        organizationId  query     string  false  "Organization id filter"
// @Success      200             {object}  ticketsResponse
// @Failure      400             {object}  errorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.service.List(c.Request().Context(), c.QueryParam("organizationId"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, ticketsResponse{Success: true, Tickets: tickets})
}

// Update sets a ticket's status.
//
// @Summary      Update a ticket's status
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Ticket id"
// @Param        body  body      updateTicketRequest  true  "New status"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/ticket/{id} [put]
func (h *TicketHandler) Update(c echo.Context) error {
	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
