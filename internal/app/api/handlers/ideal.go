package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/mollie-ideal/internal/app/service/payment"
	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/config"
	"github.com/fatflowers/mollie-ideal/pkg/response"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

type BankLister interface {
	ListBanks(ctx context.Context) ([]mollie.Bank, error)
}

// SinglePayments is implemented by payment.SinglePaymentService.
type SinglePayments interface {
	BankLister
	GetPaymentURL(ctx context.Context, objectID string, req *mollie.PaymentRequest) (string, error)
	GetPayment(ctx context.Context, objectID string) (*models.PaymentRecord, error)
	GetPaymentStatus(ctx context.Context, objectID string) (types.PaymentStatus, error)
}

// MultiplePayments is implemented by payment.MultiPaymentService.
type MultiplePayments interface {
	GetPaymentURL(ctx context.Context, objectID string, req *mollie.PaymentRequest) (string, string, error)
	GetTransaction(ctx context.Context, objectID, transactionID string) (*models.PaymentRecord, error)
	ListTransactions(ctx context.Context, objectID string) ([]*models.PaymentRecord, error)
	GetPaymentStatus(ctx context.Context, objectID, transactionID string) (types.PaymentStatus, error)
}

type createPaymentReq struct {
	BankID string `json:"bank_id" binding:"required"`
	// Amount in cents.
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Message   string `json:"message"`
	ReturnURL string `json:"return_url" binding:"required,url"`
	// ReportURL defaults to our own report endpoint for the object.
	ReportURL string `json:"report_url" binding:"omitempty,url"`
}

type paymentURLResp struct {
	TransactionID string `json:"transaction_id,omitempty"`
	URL           string `json:"url"`
}

type paymentStatusResp struct {
	TransactionID string              `json:"transaction_id"`
	LastStatus    types.PaymentStatus `json:"last_status"`
}

func toPaymentRequest(cfg *config.MollieConfig, objectID string, req *createPaymentReq, multiple bool) *mollie.PaymentRequest {
	reportURL := req.ReportURL
	if reportURL == "" {
		reportURL = cfg.ReportURL(objectID, multiple)
	}
	return &mollie.PaymentRequest{
		PartnerID:  cfg.PartnerID,
		ProfileKey: cfg.ProfileKey,
		BankID:     req.BankID,
		Amount:     req.Amount,
		Message:    req.Message,
		ReportURL:  reportURL,
		ReturnURL:  req.ReturnURL,
	}
}

// errorResponse maps payment errors onto the response envelope.
func errorResponse(err error) *response.APIResponse[any] {
	var gwErr *mollie.GatewayError
	switch {
	case payment.IsUnknownTransaction(err):
		return response.ErrorT[any](response.APIResponseCodeNotFound, err.Error())
	case errors.Is(err, mollie.ErrValidation), errors.Is(err, mollie.ErrInvalidAmount):
		return response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error())
	case errors.As(err, &gwErr):
		return response.ErrorT[any](response.APIResponseCodeGatewayError, map[string]string{"code": gwErr.Code, "message": gwErr.Message})
	default:
		return response.ErrorT[any](response.APIResponseCodeError, err.Error())
	}
}

// @Summary      List iDeal banks
// @Description  Returns the banks that currently accept iDeal payments.
// @Tags         iDeal
// @Produce      json
// @Success      200  {object}  handlers.RespBanks
// @Router       /api/v1/ideal/banks [get]
func ApiListBanks(svc BankLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		banks, err := svc.ListBanks(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(banks))
	}
}

// @Summary      Request payment
// @Description  Requests an iDeal payment for an object in single payment mode. Replaces any earlier payment of the object.
// @Tags         iDeal
// @Accept       json
// @Produce      json
// @Param        object_id  path  string            true  "Object ID"
// @Param        request    body  createPaymentReq  true  "Payment request"
// @Success      200  {object}  handlers.RespPaymentURL
// @Router       /api/v1/objects/{object_id}/ideal/payment [post]
func ApiRequestPayment(cfg *config.MollieConfig, svc SinglePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPaymentReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		objectID := c.Param("object_id")
		redirectURL, err := svc.GetPaymentURL(c.Request.Context(), objectID, toPaymentRequest(cfg, objectID, &req, false))
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(paymentURLResp{URL: redirectURL}))
	}
}

// @Summary      Get payment
// @Description  Returns the stored payment of an object in single payment mode.
// @Tags         iDeal
// @Produce      json
// @Param        object_id  path  string  true  "Object ID"
// @Success      200  {object}  handlers.RespPaymentRecord
// @Router       /api/v1/objects/{object_id}/ideal/payment [get]
func ApiGetPayment(svc SinglePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.GetPayment(c.Request.Context(), c.Param("object_id"))
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rec))
	}
}

// @Summary      Check payment status
// @Description  Checks the payment of an object with Mollie. Only the first check is authoritative; later ones report CheckedBefore.
// @Tags         iDeal
// @Produce      json
// @Param        object_id  path  string  true  "Object ID"
// @Success      200  {object}  handlers.RespPaymentStatus
// @Router       /api/v1/objects/{object_id}/ideal/payment/status [post]
func ApiCheckPayment(svc SinglePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		objectID := c.Param("object_id")
		status, err := svc.GetPaymentStatus(c.Request.Context(), objectID)
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		out := paymentStatusResp{LastStatus: status}
		if rec, err := svc.GetPayment(c.Request.Context(), objectID); err == nil {
			out.TransactionID = rec.TransactionID
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

// @Summary      Request payment (multiple)
// @Description  Requests an additional iDeal payment for an object in multiple payment mode.
// @Tags         iDeal
// @Accept       json
// @Produce      json
// @Param        object_id  path  string            true  "Object ID"
// @Param        request    body  createPaymentReq  true  "Payment request"
// @Success      200  {object}  handlers.RespPaymentURL
// @Router       /api/v1/objects/{object_id}/ideal/payments [post]
func ApiRequestMultiplePayment(cfg *config.MollieConfig, svc MultiplePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPaymentReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		objectID := c.Param("object_id")
		transactionID, redirectURL, err := svc.GetPaymentURL(c.Request.Context(), objectID, toPaymentRequest(cfg, objectID, &req, true))
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(paymentURLResp{TransactionID: transactionID, URL: redirectURL}))
	}
}

// @Summary      List payments
// @Description  Returns all payments of an object in multiple payment mode, oldest first.
// @Tags         iDeal
// @Produce      json
// @Param        object_id  path  string  true  "Object ID"
// @Success      200  {object}  handlers.RespPaymentRecords
// @Router       /api/v1/objects/{object_id}/ideal/payments [get]
func ApiListPayments(svc MultiplePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := svc.ListTransactions(c.Request.Context(), c.Param("object_id"))
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(recs))
	}
}

// @Summary      Get payment (multiple)
// @Tags         iDeal
// @Produce      json
// @Param        object_id       path  string  true  "Object ID"
// @Param        transaction_id  path  string  true  "Mollie transaction ID"
// @Success      200  {object}  handlers.RespPaymentRecord
// @Router       /api/v1/objects/{object_id}/ideal/payments/{transaction_id} [get]
func ApiGetMultiplePayment(svc MultiplePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.GetTransaction(c.Request.Context(), c.Param("object_id"), c.Param("transaction_id"))
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rec))
	}
}

// @Summary      Check payment status (multiple)
// @Tags         iDeal
// @Produce      json
// @Param        object_id       path  string  true  "Object ID"
// @Param        transaction_id  path  string  true  "Mollie transaction ID"
// @Success      200  {object}  handlers.RespPaymentStatus
// @Router       /api/v1/objects/{object_id}/ideal/payments/{transaction_id}/status [post]
func ApiCheckMultiplePayment(svc MultiplePayments) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactionID := c.Param("transaction_id")
		status, err := svc.GetPaymentStatus(c.Request.Context(), c.Param("object_id"), transactionID)
		if err != nil {
			c.JSON(http.StatusOK, errorResponse(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(paymentStatusResp{TransactionID: transactionID, LastStatus: status}))
	}
}

func RegisterIdealRoutes(r gin.IRouter, cfg *config.MollieConfig, single SinglePayments, multi MultiplePayments) {
	r.GET("/ideal/banks", ApiListBanks(single))

	obj := r.Group("/objects/:object_id/ideal")
	obj.POST("/payment", ApiRequestPayment(cfg, single))
	obj.GET("/payment", ApiGetPayment(single))
	obj.POST("/payment/status", ApiCheckPayment(single))

	obj.POST("/payments", ApiRequestMultiplePayment(cfg, multi))
	obj.GET("/payments", ApiListPayments(multi))
	obj.GET("/payments/:transaction_id", ApiGetMultiplePayment(multi))
	obj.POST("/payments/:transaction_id/status", ApiCheckMultiplePayment(multi))
}
