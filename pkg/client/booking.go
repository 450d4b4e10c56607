package client

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"bookline/pkg/model"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string, timeout time.Duration) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// Create issues the create-booking request. The idempotency key is a fresh
// token per submission attempt so the upstream can drop duplicates.
func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest, idempotencyKey string) (*Response, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyKeyHeader] = idempotencyKey
	}
	return c.httpClient.POSTWithHeaders(ctx, "/api/booking/create", req, headers)
}

// ListByEmail fetches the bookings recorded for the given customer email.
func (c *BookingClient) ListByEmail(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/booking/user/"+url.PathEscape(email))
}

// DecodeBookingRecords normalizes the listing response envelope. The
// upstream answers with a bare array, {"bookings":[...]} or {"data":[...]}
// depending on the deployment; any other shape decodes to an empty list
// rather than an error.
func DecodeBookingRecords(resp *Response) ([]*model.BookingRecord, error) {
	var bare []*model.BookingRecord
	if err := json.Unmarshal(resp.Body, &bare); err == nil {
		return ensureRecords(bare), nil
	}

	var wrapper struct {
		Bookings json.RawMessage `json:"bookings"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return []*model.BookingRecord{}, nil
	}

	for _, raw := range []json.RawMessage{wrapper.Bookings, wrapper.Data} {
		if len(raw) == 0 {
			continue
		}
		var records []*model.BookingRecord
		if err := json.Unmarshal(raw, &records); err == nil {
			return ensureRecords(records), nil
		}
	}

	return []*model.BookingRecord{}, nil
}

func ensureRecords(records []*model.BookingRecord) []*model.BookingRecord {
	if records == nil {
		return []*model.BookingRecord{}
	}
	return records
}
