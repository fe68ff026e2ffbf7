package mollie

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fatflowers/mollie-ideal/pkg/logctx"
	"github.com/fatflowers/mollie-ideal/pkg/metrics"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

// DefaultEndpoint is the iDeal XML API of Mollie.
const DefaultEndpoint = "https://secure.mollie.nl/xml/ideal"

const (
	actionBankList = "banklist"
	actionFetch    = "fetch"
	actionCheck    = "check"
)

type Options struct {
	// Endpoint overrides DefaultEndpoint, mostly for tests.
	Endpoint string
	// TestMode sends testmode=true with every request.
	TestMode   bool
	HTTPClient *http.Client
}

// Client wraps the Mollie iDeal API. Calls are synchronous and never retried:
// a status check consumed by the gateway cannot be read again.
type Client struct {
	endpoint   string
	testMode   bool
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func NewClient(opts *Options, log *zap.SugaredLogger) *Client {
	if opts == nil {
		opts = &Options{}
	}
	c := &Client{
		endpoint:   opts.Endpoint,
		testMode:   opts.TestMode,
		httpClient: opts.HTTPClient,
		log:        log,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	return c
}

type Bank struct {
	ID   string `json:"bank_id"`
	Name string `json:"bank_name"`
}

type PaymentRequest struct {
	PartnerID string
	BankID    string
	// Amount in cents.
	Amount int64
	// Message is shown on the bank statement. Mollie cuts it at 29 characters.
	Message    string
	ReportURL  string
	ReturnURL  string
	ProfileKey string
}

type Consumer struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	City    string `json:"city"`
}

// PaymentStatus is the normalized answer of a status check. Only the first
// check of a transaction is authoritative; later ones report CheckedBefore.
type PaymentStatus struct {
	TransactionID string              `json:"transaction_id"`
	Amount        int64               `json:"amount"`
	Currency      string              `json:"currency"`
	Paid          bool                `json:"paid"`
	Status        types.PaymentStatus `json:"status"`
	Consumer      *Consumer           `json:"consumer,omitempty"`
}

type xmlResponse struct {
	Banks   []xmlBank `xml:"bank"`
	Order   *xmlOrder `xml:"order"`
	Items   []xmlItem `xml:"item"`
	Message string    `xml:"message"`
}

type xmlBank struct {
	ID   string `xml:"bank_id"`
	Name string `xml:"bank_name"`
}

type xmlItem struct {
	Type      string `xml:"type,attr"`
	ErrorCode string `xml:"errorcode"`
	Message   string `xml:"message"`
}

type xmlOrder struct {
	TransactionID string       `xml:"transaction_id"`
	Amount        string       `xml:"amount"`
	Currency      string       `xml:"currency"`
	URL           string       `xml:"URL"`
	Payed         string       `xml:"payed"`
	Status        string       `xml:"status"`
	Consumer      *xmlConsumer `xml:"consumer"`
	Message       string       `xml:"message"`
}

type xmlConsumer struct {
	Name    string `xml:"consumerName"`
	Account string `xml:"consumerAccount"`
	City    string `xml:"consumerCity"`
}

// ListBanks returns the banks that currently accept iDeal payments. In test
// mode Mollie only lists its test bank.
func (c *Client) ListBanks(ctx context.Context) ([]Bank, error) {
	res, err := c.do(ctx, url.Values{"a": {actionBankList}})
	if err != nil {
		return nil, err
	}
	return lo.Map(res.Banks, func(b xmlBank, _ int) Bank {
		return Bank{ID: strings.TrimSpace(b.ID), Name: strings.TrimSpace(b.Name)}
	}), nil
}

// RequestPayment sets up a payment and returns the gateway-assigned
// transaction id and the URL the payer has to be redirected to.
func (c *Client) RequestPayment(ctx context.Context, req *PaymentRequest) (transactionID string, redirectURL string, err error) {
	if req == nil {
		return "", "", errors.New("mollie: nil payment request")
	}
	if req.Amount <= 0 {
		return "", "", fmt.Errorf("%w: got %d", ErrInvalidAmount, req.Amount)
	}

	params := url.Values{
		"a":           {actionFetch},
		"partnerid":   {req.PartnerID},
		"amount":      {strconv.FormatInt(req.Amount, 10)},
		"bank_id":     {req.BankID},
		"description": {req.Message},
		"reporturl":   {req.ReportURL},
		"returnurl":   {req.ReturnURL},
	}
	if req.ProfileKey != "" {
		params.Set("profile_key", req.ProfileKey)
	}

	res, err := c.do(ctx, params)
	if err != nil {
		return "", "", err
	}
	order := res.Order
	if order == nil || strings.TrimSpace(order.TransactionID) == "" {
		return "", "", fmt.Errorf("%w: fetch response without order", ErrMalformedResponse)
	}

	amount, err := parseAmount(order.Amount)
	if err != nil || amount != req.Amount {
		return "", "", fmt.Errorf("%w: requested %d, confirmed %q", ErrAmountMismatch, req.Amount, order.Amount)
	}
	if currency := strings.TrimSpace(order.Currency); currency != types.CurrencyEUR {
		return "", "", fmt.Errorf("%w: confirmed %q", ErrCurrencyMismatch, currency)
	}

	return strings.TrimSpace(order.TransactionID), strings.TrimSpace(order.URL), nil
}

// CheckPayment asks Mollie for the status of a transaction. Callers must not
// treat a CheckedBefore answer as authoritative.
func (c *Client) CheckPayment(ctx context.Context, partnerID, transactionID string) (*PaymentStatus, error) {
	res, err := c.do(ctx, url.Values{
		"a":              {actionCheck},
		"partnerid":      {partnerID},
		"transaction_id": {transactionID},
	})
	if err != nil {
		return nil, err
	}
	order := res.Order
	if order == nil {
		return nil, fmt.Errorf("%w: check response without order", ErrMalformedResponse)
	}

	amount, err := parseAmount(order.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrMalformedResponse, order.Amount)
	}

	out := &PaymentStatus{
		TransactionID: strings.TrimSpace(order.TransactionID),
		Amount:        amount,
		Currency:      strings.TrimSpace(order.Currency),
		Paid:          strings.EqualFold(strings.TrimSpace(order.Payed), "true"),
		Status:        types.PaymentStatus(strings.TrimSpace(order.Status)),
	}
	if out.Paid && order.Consumer != nil {
		out.Consumer = &Consumer{
			Name:    strings.TrimSpace(order.Consumer.Name),
			Account: strings.TrimSpace(order.Consumer.Account),
			City:    strings.TrimSpace(order.Consumer.City),
		}
	}
	return out, nil
}

// do posts params to the gateway and decodes the XML answer. Error items in
// the answer are returned as *GatewayError.
func (c *Client) do(ctx context.Context, params url.Values) (*xmlResponse, error) {
	action := params.Get("a")
	start := time.Now()
	defer metrics.ObserveBusinessProcess("mollie", action, start)

	if c.testMode {
		params.Set("testmode", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("mollie: build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log := logctx.FromCtx(ctx, c.log)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorw("mollie_request_failed", "action", action, "error", err.Error())
		return nil, fmt.Errorf("mollie: %s request: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mollie: read %s response: %w", action, err)
	}
	log.Infow("mollie_request", "action", action, "status", resp.StatusCode, "elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: action=%s http=%d body=%s", ErrUnexpectedStatus, action, resp.StatusCode, string(raw))
	}

	var out xmlResponse
	if err := xml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("mollie: decode %s response: %w", action, err)
	}
	for _, item := range out.Items {
		if strings.EqualFold(strings.TrimSpace(item.Type), "error") {
			gwErr := &GatewayError{Code: strings.TrimSpace(item.ErrorCode), Message: strings.TrimSpace(item.Message)}
			log.Warnw("mollie_gateway_error", "action", action, "code", gwErr.Code, "message", gwErr.Message)
			return nil, gwErr
		}
	}
	return &out, nil
}

func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
