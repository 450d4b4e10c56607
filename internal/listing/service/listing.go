package service

import (
	"context"
	"strings"
	"sync"

	"bookline/pkg/client"
	"bookline/pkg/config"
	apperrors "bookline/pkg/errors"
	"bookline/pkg/model"
	"bookline/pkg/profile"
)

// BookingLister is the slice of the booking API this flow needs.
type BookingLister interface {
	ListByEmail(ctx context.Context, email string) (*client.Response, error)
}

type ListingService interface {
	// Load resolves the active customer's email and fetches their
	// bookings. fallbackEmail is the caller-supplied email (the query
	// parameter of the original flow), consulted only when the profile
	// store has none.
	Load(ctx context.Context, fallbackEmail string) ([]*model.BookingRecord, error)
}

type listingService struct {
	bookings BookingLister
	store    profile.Store
	cfg      *config.Config

	mu      sync.Mutex
	pending map[string]*loadCall
}

// loadCall lets concurrent loads for the same email share one fetch. The
// listing view re-fetches every time it returns to the foreground, so
// back-to-back refreshes are common.
type loadCall struct {
	done    chan struct{}
	records []*model.BookingRecord
	err     error
}

func NewListingService(bookings BookingLister, store profile.Store, cfg *config.Config) ListingService {
	return &listingService{
		bookings: bookings,
		store:    store,
		cfg:      cfg,
		pending:  make(map[string]*loadCall),
	}
}

const genericFetchFailure = "Failed to fetch bookings"

func (s *listingService) Load(ctx context.Context, fallbackEmail string) ([]*model.BookingRecord, error) {
	email := s.store.Get(profile.KeyEmail)
	if email == "" {
		email = strings.TrimSpace(fallbackEmail)
	}
	if email == "" {
		s.cfg.Log.Warn("Listing requested without a resolvable email")
		return nil, apperrors.MissingEmail()
	}

	s.mu.Lock()
	if call, ok := s.pending[email]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.records, call.err
		case <-ctx.Done():
			return nil, apperrors.Timeout("Listing request cancelled")
		}
	}

	call := &loadCall{done: make(chan struct{})}
	s.pending[email] = call
	s.mu.Unlock()

	call.records, call.err = s.fetch(ctx, email)
	close(call.done)

	s.mu.Lock()
	delete(s.pending, email)
	s.mu.Unlock()

	return call.records, call.err
}

func (s *listingService) fetch(ctx context.Context, email string) ([]*model.BookingRecord, error) {
	s.cfg.Log.Debug("Fetching bookings", "email", email)

	resp, err := s.bookings.ListByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Bookings fetch failed", "email", email, "error", err)
		return nil, apperrors.Network(err)
	}

	if !resp.Ok() {
		message := client.GetErrorMessage(resp)
		if message == "" {
			message = genericFetchFailure
		}
		s.cfg.Log.Error("Bookings fetch rejected",
			"email", email,
			"status", resp.StatusCode,
			"message", message,
		)
		return nil, apperrors.Upstream(message, resp.StatusCode)
	}

	records, err := client.DecodeBookingRecords(resp)
	if err != nil {
		return nil, apperrors.Internal("Failed to decode bookings response", err)
	}

	s.cfg.Log.Info("Bookings fetched", "email", email, "count", len(records))

	// Server order is preserved; the listing never reorders.
	return records, nil
}
