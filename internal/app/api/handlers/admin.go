package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	notificationlog "github.com/fatflowers/mollie-ideal/internal/app/service/notification_log"
	"github.com/fatflowers/mollie-ideal/pkg/response"
)

// @Summary      List Mollie reports (Admin)
// @Description  Retrieves a paginated and filterable list of received Mollie reports and how they were handled.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body notificationlog.ScanRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespReportLogs
// @Router       /api/v1/admin/list_report_logs [post]
func ApiListReportLogs(scanner notificationlog.Scanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificationlog.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := scanner.Scan(c.Request.Context(), &req)
		if err != nil {
			code := response.APIResponseCodeError
			if errors.Is(err, notificationlog.ErrInvalidScan) {
				code = response.APIResponseCodeBadRequest
			}
			c.JSON(http.StatusOK, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// RegisterAdminRoutes is a no-op without a scanner, i.e. with in-memory storage.
func RegisterAdminRoutes(r gin.IRouter, scanner notificationlog.Scanner) {
	if scanner == nil {
		return
	}
	r.POST("/list_report_logs", ApiListReportLogs(scanner))
}
