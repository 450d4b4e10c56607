package service

import (
	"context"

	"bookline/pkg/client"
	"bookline/pkg/config"
	apperrors "bookline/pkg/errors"
	"bookline/pkg/model"
	"bookline/pkg/profile"
)

// FeedbackSubmitter is the slice of the feedback API this flow needs.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, req *model.FeedbackRequest, authToken string) (*client.Response, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, providerID string, stars int, review string, authToken string, bookingID string) error
}

type feedbackService struct {
	feedback FeedbackSubmitter
	store    profile.Store
	cfg      *config.Config
}

func NewFeedbackService(feedback FeedbackSubmitter, store profile.Store, cfg *config.Config) FeedbackService {
	return &feedbackService{
		feedback: feedback,
		store:    store,
		cfg:      cfg,
	}
}

const genericFeedbackFailure = "Failed to submit feedback."

func (s *feedbackService) Submit(ctx context.Context, providerID string, stars int, review string, authToken string, bookingID string) error {
	if bookingID == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if stars < 1 || stars > 5 {
		return apperrors.InvalidInput("Stars must be between 1 and 5")
	}
	if review == "" {
		return apperrors.InvalidInput("Review cannot be empty")
	}

	// The rating dialog trusts whatever identity the profile carries; an
	// unknown email is the upstream's call to reject.
	req := &model.FeedbackRequest{
		BookingID:  bookingID,
		ProviderID: providerID,
		UserEmail:  s.store.Get(profile.KeyEmail),
		Stars:      stars,
		Review:     review,
	}

	resp, err := s.feedback.Submit(ctx, req, authToken)
	if err != nil {
		s.cfg.Log.Error("Feedback request failed", "booking_id", bookingID, "error", err)
		return apperrors.Network(err)
	}

	if !resp.Ok() {
		message := client.GetErrorMessage(resp)
		if message == "" {
			message = genericFeedbackFailure
		}
		s.cfg.Log.Error("Feedback request rejected",
			"booking_id", bookingID,
			"status", resp.StatusCode,
			"message", message,
		)
		return apperrors.Upstream(message, resp.StatusCode)
	}

	s.cfg.Log.Info("Feedback submitted", "booking_id", bookingID, "stars", stars)
	return nil
}
