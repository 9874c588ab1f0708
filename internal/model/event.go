package model

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AnonymousDonor is rendered in place of a missing userName. The upstream
// producer does not guarantee the field, so absent names get a neutral
// placeholder instead of a literal "null" in user-facing text.
const AnonymousDonor = "익명"

// DonationEvent is the in-flight representation of one record from the
// donation topic. All fields are optional on the wire.
type DonationEvent struct {
	UserID   *int64
	UserName *string
	Amount   decimal.Decimal
}

// ParseDonationEvent decodes a topic record value permissively. There is no
// schema validation and no reject path: unknown fields are ignored, missing or
// unparseable fields fall back to their zero defaults, and a value that is not
// a JSON object at all yields an event with no usable fields.
func ParseDonationEvent(value []byte) DonationEvent {
	event := DonationEvent{Amount: decimal.Zero}

	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return event
	}

	if id, ok := raw["userId"].(json.Number); ok {
		if n, err := id.Int64(); err == nil {
			event.UserID = &n
		} else if f, err := id.Float64(); err == nil {
			n := int64(f)
			event.UserID = &n
		}
	}

	if name, ok := raw["userName"].(string); ok {
		event.UserName = &name
	}

	// amount may arrive as a JSON number or a numeric string; parsing the
	// string form handles both without precision loss.
	switch v := raw["amount"].(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			event.Amount = d
		}
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			event.Amount = d
		}
	}

	return event
}

// DonorName returns the display name for the event's donor.
func (e DonationEvent) DonorName() string {
	if e.UserName == nil {
		return AnonymousDonor
	}
	return *e.UserName
}
