package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OverdueReport godoc
// @Summary open borrows past their due date
// @Tags reports
// @Produce json
// @Success 200 {object} model.OverdueReport
// @Failure 500 {object} errs.ErrorResponse
// @Router /api/report [get]
func (h *Handler) OverdueReport(c echo.Context) error {
	report, err := h.librarySvc.OverdueReport(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
