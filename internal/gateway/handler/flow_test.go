package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "bookline/pkg/errors"
	"bookline/pkg/logger"
	"bookline/pkg/model"
	"bookline/pkg/profile"
)

type mockSubmission struct {
	submitFn func(ctx context.Context, draft model.ProfileDraft, providerCtx model.ProviderContext, selectedService string) (*model.Confirmation, error)
	calls    int
}

func (m *mockSubmission) Submit(ctx context.Context, draft model.ProfileDraft, providerCtx model.ProviderContext, selectedService string) (*model.Confirmation, error) {
	m.calls++
	return m.submitFn(ctx, draft, providerCtx, selectedService)
}

type mockListing struct {
	loadFn func(ctx context.Context, fallbackEmail string) ([]*model.BookingRecord, error)
}

func (m *mockListing) Load(ctx context.Context, fallbackEmail string) ([]*model.BookingRecord, error) {
	return m.loadFn(ctx, fallbackEmail)
}

type mockFeedback struct {
	submitFn func(ctx context.Context, providerID string, stars int, review string, authToken string, bookingID string) error
}

func (m *mockFeedback) Submit(ctx context.Context, providerID string, stars int, review string, authToken string, bookingID string) error {
	return m.submitFn(ctx, providerID, stars, review, authToken, bookingID)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func newRouter(submission *mockSubmission, listing *mockListing, feedback *mockFeedback, store profile.Store) *httprouter.Router {
	if store == nil {
		store = profile.NewMemoryStore()
	}
	h := NewFlowHandler(submission, listing, feedback, store, testLogger())
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestSubmitBooking_Success(t *testing.T) {
	var gotDraft model.ProfileDraft
	var gotService string
	submission := &mockSubmission{
		submitFn: func(_ context.Context, draft model.ProfileDraft, _ model.ProviderContext, selectedService string) (*model.Confirmation, error) {
			gotDraft = draft
			gotService = selectedService
			return &model.Confirmation{
				Email:   draft.Email,
				Payload: json.RawMessage(`{"bookingId":"b1"}`),
			}, nil
		},
	}
	router := newRouter(submission, nil, nil, nil)

	body := `{
		"fullName": "Asha Rao",
		"email": "asha@example.com",
		"address": "12 Lake Road",
		"service": "Deep Clean",
		"provider": {
			"businessName": "Sparkle Co",
			"services": [{"serviceName": "Deep Clean", "price": 500}]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if gotDraft.FullName != "Asha Rao" || gotDraft.Email != "asha@example.com" {
		t.Errorf("draft not passed through: %+v", gotDraft)
	}
	if gotService != "Deep Clean" {
		t.Errorf("expected selected service %q, got %q", "Deep Clean", gotService)
	}

	var resp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Email != "asha@example.com" {
		t.Errorf("expected confirmation email in response, got %q", resp.Data.Email)
	}
}

func TestSubmitBooking_MalformedBody(t *testing.T) {
	submission := &mockSubmission{
		submitFn: func(context.Context, model.ProfileDraft, model.ProviderContext, string) (*model.Confirmation, error) {
			return nil, nil
		},
	}
	router := newRouter(submission, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/submit", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if submission.calls != 0 {
		t.Errorf("expected no service call on malformed body, got %d", submission.calls)
	}
}

func TestSubmitBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation failure",
			err:        apperrors.Validation("Email is required", map[string]any{"field": "email"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "upstream rejection",
			err:        apperrors.Upstream("Slot no longer available", http.StatusConflict),
			wantStatus: http.StatusBadGateway,
			wantCode:   apperrors.CodeUpstream,
		},
		{
			name:       "duplicate in flight",
			err:        apperrors.Conflict("A booking for this email is already being submitted"),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submission := &mockSubmission{
				submitFn: func(context.Context, model.ProfileDraft, model.ProviderContext, string) (*model.Confirmation, error) {
					return nil, tt.err
				},
			}
			router := newRouter(submission, nil, nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/submit", strings.NewReader(`{"fullName":"A"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestListBookings_PassesEmailQueryParam(t *testing.T) {
	var gotFallback string
	listing := &mockListing{
		loadFn: func(_ context.Context, fallbackEmail string) ([]*model.BookingRecord, error) {
			gotFallback = fallbackEmail
			return []*model.BookingRecord{
				{ID: "b1", Service: "Deep Clean", Status: "CONFIRMED"},
			}, nil
		},
	}
	router := newRouter(nil, listing, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?email=asha%40example.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotFallback != "asha@example.com" {
		t.Errorf("expected fallback email from query param, got %q", gotFallback)
	}

	var resp struct {
		Data []struct {
			Service string `json:"service"`
			Status  string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Service != "Deep Clean" {
		t.Errorf("unexpected card payload: %+v", resp.Data)
	}
}

func TestListBookings_EmptyListIsOKWithEmptyData(t *testing.T) {
	listing := &mockListing{
		loadFn: func(context.Context, string) ([]*model.BookingRecord, error) {
			return []*model.BookingRecord{}, nil
		},
	}
	router := newRouter(nil, listing, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestListBookings_MissingEmail(t *testing.T) {
	listing := &mockListing{
		loadFn: func(context.Context, string) ([]*model.BookingRecord, error) {
			return nil, apperrors.MissingEmail()
		},
	}
	router := newRouter(nil, listing, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeMissingEmail {
		t.Errorf("expected code %q, got %q", apperrors.CodeMissingEmail, resp.Code)
	}
}

func TestSubmitFeedback_UsesBearerTokenFromHeader(t *testing.T) {
	var gotToken string
	feedback := &mockFeedback{
		submitFn: func(_ context.Context, _ string, _ int, _ string, authToken string, _ string) error {
			gotToken = authToken
			return nil
		},
	}
	store := profile.NewMemoryStore()
	store.Set(profile.KeyAuthToken, "stored-token")
	router := newRouter(nil, nil, feedback, store)

	body := `{"bookingId":"b1","providerId":"p1","stars":5,"review":"Great work"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d (%s)", rec.Code, rec.Body.String())
	}
	if gotToken != "header-token" {
		t.Errorf("expected header token to win, got %q", gotToken)
	}
}

func TestSubmitFeedback_FallsBackToStoredToken(t *testing.T) {
	var gotToken string
	feedback := &mockFeedback{
		submitFn: func(_ context.Context, _ string, _ int, _ string, authToken string, _ string) error {
			gotToken = authToken
			return nil
		},
	}
	store := profile.NewMemoryStore()
	store.Set(profile.KeyAuthToken, "stored-token")
	router := newRouter(nil, nil, feedback, store)

	body := `{"bookingId":"b1","stars":4,"review":"Good"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if gotToken != "stored-token" {
		t.Errorf("expected stored token fallback, got %q", gotToken)
	}
}

func TestSubmitFeedback_InvalidInput(t *testing.T) {
	feedback := &mockFeedback{
		submitFn: func(context.Context, string, int, string, string, string) error {
			return apperrors.InvalidInput("Stars must be between 1 and 5")
		},
	}
	router := newRouter(nil, nil, feedback, nil)

	body := `{"bookingId":"b1","stars":9,"review":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetProfile_ReturnsStoredValues(t *testing.T) {
	store := profile.NewMemoryStore()
	store.Set(profile.KeyFullName, "Asha Rao")
	store.Set(profile.KeyEmail, "asha@example.com")
	router := newRouter(nil, nil, nil, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data["fullName"] != "Asha Rao" {
		t.Errorf("expected stored full name, got %q", resp.Data["fullName"])
	}
	if resp.Data["email"] != "asha@example.com" {
		t.Errorf("expected stored email, got %q", resp.Data["email"])
	}
	if resp.Data["address"] != "" {
		t.Errorf("expected empty address, got %q", resp.Data["address"])
	}
}
