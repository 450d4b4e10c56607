package main

import (
	feedbacksvc "bookline/internal/feedback/service"
	"bookline/internal/gateway/handler"
	listingsvc "bookline/internal/listing/service"
	submissionsvc "bookline/internal/submission/service"
	"bookline/internal/submission/validator"
	"bookline/pkg/app"
	"bookline/pkg/client"
	"bookline/pkg/config"
	"bookline/pkg/profile"
)

const ServiceName = "gateway"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting booking gateway")

	store := initProfileStore(cfg)
	flowHandler := initFlows(cfg, store)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewHealthHandler(ServiceName, cfg.Log), flowHandler)
	serverApp.Run()
}

func initProfileStore(cfg *config.Config) profile.Store {
	if cfg.ProfilePath == "" {
		return profile.NewMemoryStore()
	}
	return profile.NewFileStore(cfg.ProfilePath, cfg.Log)
}

func initFlows(cfg *config.Config, store profile.Store) *handler.FlowHandler {
	bookingClient := client.NewBookingClient(cfg.BookingAPIBaseURL, cfg.UpstreamTimeout)
	feedbackClient := client.NewFeedbackClient(cfg.FeedbackAPIBaseURL, cfg.UpstreamTimeout)

	submissionValidator := validator.NewSubmissionValidator(cfg.Log)

	submissionService := submissionsvc.NewSubmissionService(bookingClient, submissionValidator, store, cfg)
	listingService := listingsvc.NewListingService(bookingClient, store, cfg)
	feedbackService := feedbacksvc.NewFeedbackService(feedbackClient, store, cfg)

	cfg.Log.Info("Booking flows initialized",
		"booking_api", cfg.BookingAPIBaseURL,
		"feedback_api", cfg.FeedbackAPIBaseURL,
	)

	return handler.NewFlowHandler(submissionService, listingService, feedbackService, store, cfg.Log)
}
