package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bookline/internal/submission/validator"
	"bookline/pkg/client"
	"bookline/pkg/config"
	apperrors "bookline/pkg/errors"
	"bookline/pkg/model"
	"bookline/pkg/profile"
	"bookline/pkg/sanitizer"
)

// BookingCreator is the slice of the booking API this flow needs.
type BookingCreator interface {
	Create(ctx context.Context, req *model.BookingRequest, idempotencyKey string) (*client.Response, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, draft model.ProfileDraft, providerCtx model.ProviderContext, selectedService string) (*model.Confirmation, error)
}

type submissionService struct {
	bookings  BookingCreator
	validator *validator.SubmissionValidator
	store     profile.Store
	cfg       *config.Config

	// inFlight tracks outstanding submissions per customer email. It is
	// the service-side analog of disabling the submit button while a
	// request is pending.
	inFlight sync.Map
}

func NewSubmissionService(
	bookings BookingCreator,
	validator *validator.SubmissionValidator,
	store profile.Store,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		bookings:  bookings,
		validator: validator,
		store:     store,
		cfg:       cfg,
	}
}

const genericSubmitFailure = "Failed to submit booking."

func (s *submissionService) Submit(ctx context.Context, draft model.ProfileDraft, providerCtx model.ProviderContext, selectedService string) (*model.Confirmation, error) {
	draft = sanitizer.SanitizeProfileDraft(draft)

	if err := s.validator.Validate(draft, selectedService); err != nil {
		var vErr validator.ValidationError
		if errors.As(err, &vErr) {
			s.cfg.Log.Warn("Booking submission rejected", "field", vErr.Field)
			return nil, apperrors.Validation(vErr.Message, map[string]any{"field": vErr.Field})
		}
		return nil, apperrors.Internal("Submission validation failed", err)
	}

	// A selection outside the catalog leaves the price empty; only a
	// missing selection blocks the submission.
	price, matched := providerCtx.PriceFor(selectedService)
	if !matched {
		s.cfg.Log.Warn("Selected service not in catalog, submitting without price",
			"service", selectedService,
			"business_name", providerCtx.BusinessName,
		)
	}

	key := strings.ToLower(draft.Email)
	if _, loaded := s.inFlight.LoadOrStore(key, struct{}{}); loaded {
		return nil, apperrors.Conflict("A booking submission is already in progress for this email")
	}
	defer s.inFlight.Delete(key)

	req := &model.BookingRequest{
		FullName:     draft.FullName,
		Email:        draft.Email,
		Address:      draft.Address,
		BusinessName: providerCtx.BusinessName,
		ProviderName: providerCtx.ProviderName,
		Service:      selectedService,
		Price:        price,
		Category:     providerCtx.Category,
	}

	attemptToken := uuid.NewString()
	resp, err := s.bookings.Create(ctx, req, attemptToken)
	if err != nil {
		s.cfg.Log.Error("Create-booking request failed", "error", err)
		return nil, apperrors.Network(err)
	}

	if !resp.Ok() {
		message := client.GetErrorMessage(resp)
		if message == "" {
			message = genericSubmitFailure
		}
		s.cfg.Log.Error("Create-booking request rejected",
			"status", resp.StatusCode,
			"message", message,
		)
		return nil, apperrors.Upstream(message, resp.StatusCode)
	}

	// Only the email survives the form; it is what the listing flow keys
	// on next time around.
	s.store.Set(profile.KeyEmail, draft.Email)

	s.cfg.Log.Info("Booking submitted successfully",
		"service", selectedService,
		"business_name", providerCtx.BusinessName,
		"attempt_token", attemptToken,
	)

	return &model.Confirmation{
		Email:   draft.Email,
		Payload: resp.Body,
	}, nil
}
