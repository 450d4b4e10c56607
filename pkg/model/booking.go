package model

import (
	"encoding/json"
	"time"
)

// ProfileDraft carries the customer identity fields entered in a booking
// form, before sanitization.
type ProfileDraft struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// ServiceOffering is one priced service a provider exposes. Prices arrive
// as strings or numbers depending on the provider integration.
type ServiceOffering struct {
	ServiceID   FlexString `json:"serviceId"`
	ServiceName string     `json:"serviceName"`
	Price       FlexString `json:"price"`
}

// ProviderContext is the provider-supplied side of a booking form session:
// the business identity and its service catalog. Immutable within a session.
type ProviderContext struct {
	BusinessName string            `json:"businessName"`
	ProviderName string            `json:"providerName"`
	Category     string            `json:"category"`
	Services     []ServiceOffering `json:"services"`
}

// PriceFor returns the price of the first offering whose name equals the
// given service name. The catalog holds at most one offering per distinct
// name, so first match is the match.
func (p *ProviderContext) PriceFor(serviceName string) (FlexString, bool) {
	for _, offering := range p.Services {
		if offering.ServiceName == serviceName {
			return offering.Price, true
		}
	}
	return FlexString{}, false
}

// BookingRequest is the create-booking payload. Constructed once per
// accepted submission and sent exactly once.
type BookingRequest struct {
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	BusinessName string     `json:"businessName"`
	ProviderName string     `json:"providerName"`
	Service      string     `json:"service"`
	Price        FlexString `json:"price"`
	Category     string     `json:"category"`
}

// Confirmation carries the upstream create-booking response body through to
// the caller. The upstream shape is unspecified and passed along untouched.
type Confirmation struct {
	Email   string          `json:"email"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// BookingRecord is the server-owned representation of a previously created
// booking. Upstream variants disagree on field names (_id vs id, service vs
// serviceName, providerId vs nested provider object), so decoding is
// tolerant and keeps whichever alias is present.
type BookingRecord struct {
	ID           string
	Service      string
	BusinessName string
	ProviderName string
	ProviderID   string
	Price        FlexString
	Status       string
	Date         string
	CreatedAt    string
	Address      string
}

const PendingStatus = "PENDING"

func (r *BookingRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		MongoID      FlexString `json:"_id"`
		ID           FlexString `json:"id"`
		Service      string     `json:"service"`
		ServiceName  string     `json:"serviceName"`
		BusinessName string     `json:"businessName"`
		ProviderName string     `json:"providerName"`
		ProviderID   FlexString `json:"providerId"`
		Provider     struct {
			ID FlexString `json:"_id"`
		} `json:"provider"`
		Price     FlexString `json:"price"`
		Status    string     `json:"status"`
		Date      string     `json:"date"`
		CreatedAt string     `json:"createdAt"`
		Address   string     `json:"address"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.ID = aux.MongoID.String()
	if r.ID == "" {
		r.ID = aux.ID.String()
	}
	r.Service = aux.Service
	if r.Service == "" {
		r.Service = aux.ServiceName
	}
	r.ProviderID = aux.ProviderID.String()
	if r.ProviderID == "" {
		r.ProviderID = aux.Provider.ID.String()
	}
	r.BusinessName = aux.BusinessName
	r.ProviderName = aux.ProviderName
	r.Price = aux.Price
	r.Status = aux.Status
	r.Date = aux.Date
	r.CreatedAt = aux.CreatedAt
	r.Address = aux.Address
	return nil
}

// DisplayStatus returns the server status, defaulting to PENDING when the
// record carries none.
func (r *BookingRecord) DisplayStatus() string {
	if r.Status == "" {
		return PendingStatus
	}
	return r.Status
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// EffectiveDate resolves the record's display date: the booking date when
// present, otherwise the creation timestamp.
func (r *BookingRecord) EffectiveDate() (time.Time, bool) {
	for _, raw := range []string{r.Date, r.CreatedAt} {
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
