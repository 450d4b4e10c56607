// Package presenter shapes booking records into the card fields the
// bookings view displays. Layout and styling stay with the caller; this
// package only decides the text.
package presenter

import "bookline/pkg/model"

const (
	dateLayout     = "2 Jan 2006"
	currencySymbol = "₹"
)

type Card struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Service      string `json:"service"`
	BusinessName string `json:"businessName"`
	ProviderName string `json:"providerName"`
	ProviderID   string `json:"providerId,omitempty"`
	Price        string `json:"price"`
	Date         string `json:"date"`
	Address      string `json:"address,omitempty"`
}

func Present(records []*model.BookingRecord) []Card {
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, presentOne(rec))
	}
	return cards
}

func presentOne(rec *model.BookingRecord) Card {
	card := Card{
		ID:           rec.ID,
		Status:       rec.DisplayStatus(),
		Service:      rec.Service,
		BusinessName: rec.BusinessName,
		ProviderName: rec.ProviderName,
		ProviderID:   rec.ProviderID,
		Address:      rec.Address,
	}

	if !rec.Price.IsEmpty() {
		card.Price = currencySymbol + rec.Price.String()
	}

	if date, ok := rec.EffectiveDate(); ok {
		card.Date = date.Format(dateLayout)
	}

	return card
}
