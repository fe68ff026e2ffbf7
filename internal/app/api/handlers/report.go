package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/mollie-ideal/internal/app/service/report"
	"github.com/fatflowers/mollie-ideal/pkg/logctx"
)

type reportFunc func(ctx context.Context, rep *report.Report) (report.Outcome, error)

// @Summary      Mollie report (single payment)
// @Description  Called by Mollie when the status of the payment of an object changed. Answers 403 when the transaction id is missing or not the one stored on the object.
// @Tags         Webhook
// @Produce      plain
// @Param        object_id       path   string  true  "Object ID"
// @Param        transaction_id  query  string  true  "Mollie transaction ID"
// @Success      200  {string}  string  "OK"
// @Failure      403  {string}  string  "Wrong or missing transaction ID"
// @Router       /ideal/report/{object_id} [get]
// ApiReportPayment handles Mollie reports for objects with a single payment.
func ApiReportPayment(svc *report.Service) gin.HandlerFunc {
	return reportHandler(svc, svc.HandleSingle)
}

// @Summary      Mollie report (multiple payments)
// @Description  Called by Mollie when the status of one of the payments of an object changed. Answers 403 when the transaction id is missing or unknown for the object.
// @Tags         Webhook
// @Produce      plain
// @Param        object_id       path   string  true  "Object ID"
// @Param        transaction_id  query  string  true  "Mollie transaction ID"
// @Success      200  {string}  string  "OK"
// @Failure      403  {string}  string  "Wrong or missing transaction ID"
// @Router       /ideal/multi/report/{object_id} [get]
// ApiReportMultiplePayments handles Mollie reports for objects with multiple payments.
func ApiReportMultiplePayments(svc *report.Service) gin.HandlerFunc {
	return reportHandler(svc, svc.HandleMultiple)
}

func reportHandler(svc *report.Service, handle reportFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logctx.FromGin(c, svc.Logger)
		// FormValue parses both the query string and an urlencoded body.
		transactionID := c.Request.FormValue("transaction_id")
		log.Infow("ideal_report_received", "object_id", c.Param("object_id"), "transaction_id", transactionID)

		rep := &report.Report{
			ObjectID:      c.Param("object_id"),
			TransactionID: transactionID,
			TraceID:       c.GetString(logctx.TraceIDKey),
			Form:          c.Request.Form,
			Request:       c.Request,
		}
		outcome, err := handle(c.Request.Context(), rep)
		if err != nil {
			log.Errorw("ideal_report_handle_error", "error", err.Error())
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		if outcome.Rejected() {
			c.String(http.StatusForbidden, report.RejectMessage)
			return
		}
		c.String(http.StatusOK, report.AcceptMessage)
	}
}

func RegisterReportRoutes(r gin.IRouter, svc *report.Service) {
	// Mount under the "/ideal" group
	r.GET("/report/:object_id", ApiReportPayment(svc))
	r.POST("/report/:object_id", ApiReportPayment(svc))
	r.GET("/multi/report/:object_id", ApiReportMultiplePayments(svc))
	r.POST("/multi/report/:object_id", ApiReportMultiplePayments(svc))
}
