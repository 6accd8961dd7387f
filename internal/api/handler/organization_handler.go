package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
)

type OrganizationHandler struct {
	service ports.OrganizationService
}

func NewOrganizationHandler(service ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

type organizationsResponse struct {
	Success       bool                   `json:"success"`
	Organizations []*domain.Organization `json:"organizations"`
}

// List returns all organizations. No auth: the login screen needs this.
//
// @Summary      List organizations
// @Tags         organizations
// @Produce      json
// @Success      200  {object}  organizationsResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	orgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, organizationsResponse{Success: true, Organizations: orgs})
}
