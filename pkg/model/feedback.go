package model

// FeedbackRequest is the payload posted once per rating action. ProviderID
// is optional: some upstream variants resolve the provider from the booking
// and ignore it, so it is omitted when unknown rather than guessed.
type FeedbackRequest struct {
	BookingID  string `json:"bookingId"`
	ProviderID string `json:"providerId,omitempty"`
	UserEmail  string `json:"userEmail"`
	Stars      int    `json:"stars"`
	Review     string `json:"review"`
}
