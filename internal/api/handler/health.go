package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles the liveness probe. Returns 200 immediately;
// confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// StoreHandler pings the backing store on demand.
type StoreHandler struct {
	db *mongo.Database
}

func NewStoreHandler(db *mongo.Database) *StoreHandler {
	return &StoreHandler{db: db}
}

// Check reports whether the store answers a ping.
//
// @Summary      Store health probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/test [get]
func (h *StoreHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "MongoDB connected"})
}
