package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labsuite/user-access-api/internal/core/ports"
)

// ActionHandler records privileged actions on the super admin's own log.
type ActionHandler struct {
	service ports.UserService
}

func NewActionHandler(service ports.UserService) *ActionHandler {
	return &ActionHandler{service: service}
}

type recordActionRequest struct {
	Action string `json:"action" validate:"required"`
}

// Record appends an entry to the calling super admin's action log.
//
// @Summary      Record a privileged action
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordActionRequest  true  "Action description"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /actions/record [post]
func (h *ActionHandler) Record(c echo.Context) error {
	var req recordActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.service.RecordAction(c.Request().Context(), actor, req.Action); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "action recorded"})
}
