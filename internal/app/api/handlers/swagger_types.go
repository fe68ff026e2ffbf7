package handlers

import (
    notificationlog "github.com/fatflowers/mollie-ideal/internal/app/service/notification_log"
    "github.com/fatflowers/mollie-ideal/internal/models"
    "github.com/fatflowers/mollie-ideal/internal/platform/mollie"
    "github.com/fatflowers/mollie-ideal/pkg/response"
)

// RespBanks wraps the bank list in the standard envelope.
type RespBanks struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    []mollie.Bank            `json:"data"`
}

// RespPaymentURL wraps paymentURLResp in the standard envelope.
type RespPaymentURL struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    paymentURLResp           `json:"data"`
}

// RespPaymentRecord wraps a stored payment in the standard envelope.
type RespPaymentRecord struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    models.PaymentRecord     `json:"data"`
}

// RespPaymentRecords wraps all payments of an object in the standard envelope.
type RespPaymentRecords struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    []models.PaymentRecord   `json:"data"`
}

// RespPaymentStatus wraps paymentStatusResp in the standard envelope.
type RespPaymentStatus struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    paymentStatusResp        `json:"data"`
}

// RespReportLogs wraps a page of report logs in the standard envelope.
type RespReportLogs struct {
    Code    response.APIResponseCode     `json:"code"`
    Message string                       `json:"message"`
    Data    notificationlog.ScanResponse `json:"data"`
}
