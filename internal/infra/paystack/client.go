package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ProviderName    = "paystack"
	SignatureHeader = "X-Paystack-Signature"

	maxResponseBytes = 1 << 20
)

var (
	ErrNotConfigured    = errs.Mark(errors.New("payment provider is not configured"), errs.ErrConfiguration)
	ErrInvalidSignature = errs.Mark(errors.New("invalid webhook signature"), errs.ErrForbidden)
	ErrMalformedPayload = errs.Mark(errors.New("malformed provider payload"), errs.ErrValidation)

	// Left unmarked so errs.Is keeps them apart; unavailable and rejected add
	// errs.ErrUpstreamProvider at the wrap site.
	ErrUnavailable = errors.New("payment provider unavailable")
	ErrRejected    = errors.New("payment provider rejected the request")
)

// Client talks to the Paystack transaction API. Amounts are minor units (kobo).
// Calls share one circuit breaker so a failing provider is not hammered by
// request handlers and the reconciliation job at the same time.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	secretKey   string
	callbackURL string
	breaker     *gobreaker.CircuitBreaker
	tracer      trace.Tracer
}

func NewClient(cfg config.PaymentConfig) *Client {
	trips := cfg.BreakerTrips
	if trips == 0 {
		trips = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    ProviderName,
		Timeout: cfg.BreakerWindow,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trips
		},
		IsSuccessful: func(err error) bool {
			// Provider-side rejections of a single request say nothing about its health.
			return err == nil || errors.Is(err, ErrRejected)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		breaker:     breaker,
		tracer:      otel.Tracer("shortlet-booking/paystack"),
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Initialize(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	ctx, span := c.tracer.Start(ctx, "Paystack.Initialize",
		trace.WithAttributes(attribute.String("payment.reference", req.Reference)))
	defer span.End()

	if c.secretKey == "" {
		span.SetStatus(codes.Error, ErrNotConfigured.Error())
		return nil, ErrNotConfigured
	}

	body := initializeBody{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		Reference:   req.Reference,
		CallbackURL: c.callbackURL,
		Metadata:    metadata{BookingID: req.BookingID.String()},
	}

	var out envelope[initializeData]
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &payment.CheckoutSession{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// Verify asks the provider for the current outcome of reference.
func (c *Client) Verify(ctx context.Context, reference string) (payment.ProviderEvent, error) {
	ctx, span := c.tracer.Start(ctx, "Paystack.Verify",
		trace.WithAttributes(attribute.String("payment.reference", reference)))
	defer span.End()

	if c.secretKey == "" {
		span.SetStatus(codes.Error, ErrNotConfigured.Error())
		return payment.ProviderEvent{}, ErrNotConfigured
	}

	var out envelope[transactionData]
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return payment.ProviderEvent{}, err
	}

	raw, _ := json.Marshal(out.Data)
	event, err := out.Data.toEvent(raw)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return payment.ProviderEvent{}, err
	}
	span.SetAttributes(attribute.String("payment.outcome", string(event.Outcome)))
	return event, nil
}

// ParseWebhook checks the HMAC-SHA512 signature of body and decodes it.
// ok is false for event types that carry no payment outcome.
func (c *Client) ParseWebhook(signature string, body []byte) (event payment.ProviderEvent, ok bool, err error) {
	if c.secretKey == "" {
		return payment.ProviderEvent{}, false, ErrNotConfigured
	}
	if !c.validSignature(signature, body) {
		return payment.ProviderEvent{}, false, ErrInvalidSignature
	}

	var hook webhookBody
	if err := json.Unmarshal(body, &hook); err != nil {
		return payment.ProviderEvent{}, false, errs.Wrap(ErrMalformedPayload, err.Error())
	}

	switch hook.Event {
	case "charge.success", "charge.failed":
	default:
		return payment.ProviderEvent{}, false, nil
	}

	event, err = hook.Data.toEvent(body)
	if err != nil {
		return payment.ProviderEvent{}, false, err
	}
	return event, true, nil
}

func (c *Client) Sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) validSignature(signature string, body []byte) bool {
	expected, err := hex.DecodeString(c.Sign(body))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

func (c *Client) do(ctx context.Context, method, path string, in any, out statusEnvelope) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return unavailable("circuit open")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in any, out statusEnvelope) error {
	var reader io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return errs.Wrap(err, "encode provider request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errs.Wrap(err, "build provider request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unavailable("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return unavailable("read response: %v", err)
	}

	slog.Debug("payment provider call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		return unavailable("status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errs.Wrapf(ErrNotConfigured, "provider refused credentials (status %d)", resp.StatusCode)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return unavailable("decode response (status %d): %v", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !out.ok() {
		return rejected("status %d: %s", resp.StatusCode, out.message())
	}
	return nil
}

func unavailable(format string, args ...any) error {
	return errs.Mark(errs.Wrapf(ErrUnavailable, format, args...), errs.ErrUpstreamProvider)
}

func rejected(format string, args ...any) error {
	return errs.Mark(errs.Wrapf(ErrRejected, format, args...), errs.ErrUpstreamProvider)
}

type statusEnvelope interface {
	ok() bool
	message() string
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (e *envelope[T]) ok() bool        { return e.Status }
func (e *envelope[T]) message() string { return e.Message }

type metadata struct {
	BookingID string `json:"booking_id"`
}

type initializeBody struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	Currency    string   `json:"currency"`
	Reference   string   `json:"reference"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    metadata `json:"metadata"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type transactionData struct {
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	Metadata  json.RawMessage `json:"metadata"`
}

type webhookBody struct {
	Event string          `json:"event"`
	Data  transactionData `json:"data"`
}

func (d transactionData) toEvent(raw []byte) (payment.ProviderEvent, error) {
	event := payment.ProviderEvent{
		Provider:  ProviderName,
		Reference: d.Reference,
		Outcome:   mapStatus(d.Status),
		Amount:    d.Amount,
		Currency:  strings.ToUpper(d.Currency),
		Raw:       raw,
	}

	// Paystack echoes metadata either as an object or, when empty, as "".
	var md metadata
	if len(d.Metadata) > 0 && d.Metadata[0] == '{' {
		if err := json.Unmarshal(d.Metadata, &md); err != nil {
			return payment.ProviderEvent{}, errs.Wrap(ErrMalformedPayload, "metadata")
		}
	}
	if md.BookingID != "" {
		id, err := uuid.Parse(md.BookingID)
		if err != nil {
			return payment.ProviderEvent{}, errs.Wrap(ErrMalformedPayload, fmt.Sprintf("booking_id %q", md.BookingID))
		}
		event.BookingID = id
	}

	if err := event.Validate(); err != nil {
		return payment.ProviderEvent{}, err
	}
	return event, nil
}

func mapStatus(s string) payment.Outcome {
	switch strings.ToLower(s) {
	case "success":
		return payment.OutcomeSucceeded
	case "failed", "reversed":
		return payment.OutcomeFailed
	case "abandoned":
		return payment.OutcomeAbandoned
	default:
		// ongoing, pending, processing, queued
		return payment.OutcomePending
	}
}
