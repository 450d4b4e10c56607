package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookline/pkg/model"
)

func TestDecodeBookingRecords_EnvelopeShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
	}{
		{
			name:      "bare array",
			body:      `[{"_id":"a","service":"Haircut"},{"_id":"b","service":"Shave"}]`,
			wantCount: 2,
		},
		{
			name:      "bookings wrapper",
			body:      `{"bookings":[{"_id":"a","service":"Haircut"}]}`,
			wantCount: 1,
		},
		{
			name:      "data wrapper",
			body:      `{"data":[{"_id":"a","service":"Haircut"}]}`,
			wantCount: 1,
		},
		{
			name:      "empty object",
			body:      `{}`,
			wantCount: 0,
		},
		{
			name:      "null body",
			body:      `null`,
			wantCount: 0,
		},
		{
			name:      "wrapper with non-array field",
			body:      `{"bookings":"nope"}`,
			wantCount: 0,
		},
		{
			name:      "unrecognized scalar",
			body:      `42`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeBookingRecords(&Response{Body: []byte(tt.body)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if records == nil {
				t.Fatalf("expected a non-nil slice")
			}
			if len(records) != tt.wantCount {
				t.Errorf("got %d records, want %d", len(records), tt.wantCount)
			}
		})
	}
}

func TestDecodeBookingRecords_SameRecordsAcrossShapes(t *testing.T) {
	shapes := []string{
		`[{"_id":"a","service":"Haircut","price":500}]`,
		`{"bookings":[{"_id":"a","service":"Haircut","price":500}]}`,
		`{"data":[{"_id":"a","service":"Haircut","price":500}]}`,
	}

	for _, body := range shapes {
		records, err := DecodeBookingRecords(&Response{Body: []byte(body)})
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", body, err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record for %s, got %d", body, len(records))
		}
		rec := records[0]
		if rec.ID != "a" || rec.Service != "Haircut" || rec.Price.String() != "500" {
			t.Errorf("record mismatch for %s: %+v", body, rec)
		}
	}
}

func TestBookingClient_ListByEmail_EscapesPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewBookingClient(server.URL, 2*time.Second)
	resp, err := c.ListByEmail(context.Background(), "jane+test@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("expected 2xx, got %d", resp.StatusCode)
	}
	if gotPath != "/api/booking/user/jane+test@x.com" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestBookingClient_Create_SendsIdempotencyKey(t *testing.T) {
	var gotKey, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(IdempotencyKeyHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewBookingClient(server.URL, 2*time.Second)
	resp, err := c.Create(context.Background(), &model.BookingRequest{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
	}, "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("expected 2xx, got %d", resp.StatusCode)
	}
	if gotKey != "attempt-1" {
		t.Errorf("expected idempotency key to be forwarded, got %q", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "message field",
			body: `{"message":"slot taken"}`,
			want: "slot taken",
		},
		{
			name: "error field",
			body: `{"error":"bad request"}`,
			want: "bad request",
		},
		{
			name: "no usable field",
			body: `{"status":500}`,
			want: "",
		},
		{
			name: "not json",
			body: `<html>oops</html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorMessage(&Response{Body: []byte(tt.body)}); got != tt.want {
				t.Errorf("GetErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
