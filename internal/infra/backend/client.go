package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/stadium"
	"arenahub-booking/internal/infra"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/usecase/commands"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 512

// Client talks to the stadium booking REST backend. One instance is built at
// startup and shared by every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.BackendConfig, logger *slog.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, logger)
}

func NewClientWithHTTP(cfg config.BackendConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) ListStadiums(ctx context.Context) ([]*stadium.Stadium, error) {
	var payload []stadiumPayload
	if err := c.do(ctx, http.MethodGet, "/stadiums", nil, &payload); err != nil {
		return nil, err
	}

	stadiums := make([]*stadium.Stadium, 0, len(payload))
	for _, p := range payload {
		s, err := stadium.NewStadium(p.StadiumID, p.Name, stadium.Location{
			City:   p.Location.City,
			Region: p.Location.Region,
		}, p.PlayerCapacity, p.Price)
		if err != nil {
			c.logger.Warn("skipping malformed stadium",
				slog.Int64("stadium_id", p.StadiumID),
				slog.String("error", err.Error()),
			)
			continue
		}
		stadiums = append(stadiums, s)
	}
	return stadiums, nil
}

// ListBookings skips records whose date cannot be read. Unknown statuses are
// kept verbatim and therefore still occupy their slot.
func (c *Client) ListBookings(ctx context.Context) ([]booking.Record, error) {
	var payload []bookingPayload
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &payload); err != nil {
		return nil, err
	}

	records := make([]booking.Record, 0, len(payload))
	for _, p := range payload {
		date, err := parseBookingDate(p.BookingDate)
		if err != nil {
			c.logger.Warn("skipping booking with unreadable date",
				slog.Int64("stadium_id", p.StadiumID),
				slog.String("booking_date", p.BookingDate),
			)
			continue
		}
		status, err := booking.ParseStatus(p.Status)
		if err != nil {
			status = booking.Status(strings.ToUpper(strings.TrimSpace(p.Status)))
		}
		records = append(records, booking.Record{
			ID:         p.BookingID,
			CustomerID: p.CustomerID,
			StadiumID:  p.StadiumID,
			Date:       date,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Status:     status,
		})
	}
	return records, nil
}

func (c *Client) CheckOrCreateCustomer(ctx context.Context, draft commands.CustomerDraft) (int64, error) {
	var resp customerResponse
	err := c.do(ctx, http.MethodPost, "/customers/check-or-create", customerRequest{
		Email: draft.Email,
		Phone: draft.Phone,
		Name:  draft.Name,
	}, &resp)
	if err != nil {
		return 0, err
	}
	if resp.CustomerID <= 0 {
		return 0, infra.WrapGatewayErr(c.logger, infra.KindDecode, "check-or-create returned no customerID", nil)
	}
	return resp.CustomerID, nil
}

// CreateBooking discards the created record; nothing downstream reads it.
func (c *Client) CreateBooking(ctx context.Context, draft commands.BookingDraft) error {
	return c.do(ctx, http.MethodPost, "/bookings", bookingPayload{
		CustomerID:  draft.CustomerID,
		StadiumID:   draft.StadiumID,
		BookingDate: draft.BookingDate.String(),
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		Status:      draft.Status.String(),
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return infra.WrapGatewayErr(c.logger, infra.KindDecode, "failed to encode request for "+path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindUnavailable, "failed to build request for "+path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindUnavailable, method+" "+path+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return infra.WrapGatewayErr(c.logger, kindForStatus(resp.StatusCode),
			fmt.Sprintf("unexpected status %d for %s %s", resp.StatusCode, method, path),
			fmt.Errorf("response body: %s", strings.TrimSpace(string(snippet))),
		)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindDecode, "failed to decode response for "+path, err)
	}
	return nil
}

func kindForStatus(status int) infra.GatewayErrorKind {
	switch {
	case status == http.StatusNotFound:
		return infra.KindNotFound
	case status >= 500:
		return infra.KindUnavailable
	default:
		return infra.KindRejected
	}
}

// parseBookingDate accepts a plain date or a timestamp whose first ten
// characters are the date.
func parseBookingDate(raw string) (booking.Date, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > len("2006-01-02") {
		raw = raw[:len("2006-01-02")]
	}
	return booking.ParseDate(raw)
}
