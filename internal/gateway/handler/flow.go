package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	feedbacksvc "bookline/internal/feedback/service"
	"bookline/internal/listing/presenter"
	listingsvc "bookline/internal/listing/service"
	submissionsvc "bookline/internal/submission/service"
	httputil "bookline/pkg/http"
	"bookline/pkg/logger"
	"bookline/pkg/model"
	"bookline/pkg/profile"
)

// FlowHandler exposes the three customer flows to the UI: submit a booking,
// list bookings, rate a finished one.
type FlowHandler struct {
	submission submissionsvc.SubmissionService
	listing    listingsvc.ListingService
	feedback   feedbacksvc.FeedbackService
	store      profile.Store
	log        *logger.Logger
}

func NewFlowHandler(
	submission submissionsvc.SubmissionService,
	listing listingsvc.ListingService,
	feedback feedbacksvc.FeedbackService,
	store profile.Store,
	log *logger.Logger,
) *FlowHandler {
	return &FlowHandler{
		submission: submission,
		listing:    listing,
		feedback:   feedback,
		store:      store,
		log:        log,
	}
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/booking/submit", h.SubmitBooking)
	router.GET("/api/v1/bookings", h.ListBookings)
	router.POST("/api/v1/feedback", h.SubmitFeedback)
	router.GET("/api/v1/profile", h.GetProfile)
}

type SubmitBookingRequest struct {
	FullName string                `json:"fullName"`
	Email    string                `json:"email"`
	Address  string                `json:"address"`
	Service  string                `json:"service"`
	Provider model.ProviderContext `json:"provider"`
}

func (h *FlowHandler) SubmitBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SubmitBooking", "error", writeErr)
		}
		return
	}

	draft := model.ProfileDraft{
		FullName: req.FullName,
		Email:    req.Email,
		Address:  req.Address,
	}

	confirmation, err := h.submission.Submit(r.Context(), draft, req.Provider, req.Service)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SubmitBooking", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, confirmation); err != nil {
		h.log.Error("failed to write created response", "handler", "SubmitBooking", "error", err)
	}
}

func (h *FlowHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fallbackEmail := r.URL.Query().Get("email")

	records, err := h.listing.Load(r.Context(), fallbackEmail)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, presenter.Present(records)); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBookings", "error", err)
	}
}

type SubmitFeedbackRequest struct {
	BookingID  string `json:"bookingId"`
	ProviderID string `json:"providerId,omitempty"`
	Stars      int    `json:"stars"`
	Review     string `json:"review"`
}

func (h *FlowHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SubmitFeedback", "error", writeErr)
		}
		return
	}

	token := bearerToken(r)
	if token == "" {
		token = h.store.Get(profile.KeyAuthToken)
	}

	err := h.feedback.Submit(r.Context(), req.ProviderID, req.Stars, req.Review, token, req.BookingID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SubmitFeedback", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// GetProfile returns the stored form pre-fill values so the booking form
// opens with the customer's last-used identity.
func (h *FlowHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values := map[string]string{
		"fullName":     h.store.Get(profile.KeyFullName),
		"email":        h.store.Get(profile.KeyEmail),
		"address":      h.store.Get(profile.KeyAddress),
		"businessName": h.store.Get(profile.KeyBusinessName),
	}

	if err := httputil.WriteSuccess(w, values); err != nil {
		h.log.Error("failed to write success response", "handler", "GetProfile", "error", err)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
