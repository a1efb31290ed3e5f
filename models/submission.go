package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InterestRequest is the payload of a buyer interest submission. Text fields
// are pointers so that an absent key can be told apart from an empty one.
type InterestRequest struct {
	PropertyID json.RawMessage `json:"property_id"`
	Name       *string         `json:"name"`
	Email      *string         `json:"email"`
	Phone      *string         `json:"phone"`
}

// VisitRequest is an interest submission that also books a date and time.
type VisitRequest struct {
	InterestRequest
	Date *string `json:"date"`
	Time *string `json:"time"`
}

// Contact holds the validated submitter details of a submission.
type Contact struct {
	PropertyID int    `json:"property_id"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

// Visit is a validated visit booking.
type Visit struct {
	Contact
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// Validate checks the interest payload and returns the trimmed contact details.
func (r InterestRequest) Validate() (Contact, error) {
	id, err := ParsePropertyID(r.PropertyID)
	if err != nil {
		return Contact{}, err
	}

	c := Contact{
		PropertyID: id,
		Name:       trimmed(r.Name),
		Email:      trimmed(r.Email),
		Phone:      trimmed(r.Phone),
	}
	if err := Validate(c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Validate checks the visit payload, including the requested date and time.
func (r VisitRequest) Validate() (Visit, error) {
	c, err := r.InterestRequest.Validate()
	if err != nil {
		return Visit{}, err
	}
	v := Visit{Contact: c, Date: trimmed(r.Date), Time: trimmed(r.Time)}
	if err := Validate(v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

// maxWholeFloat is the largest float64 below which every integer is exact.
const maxWholeFloat = 1 << 53

// ParsePropertyID accepts a JSON number with no fractional part, or a string
// holding an integer.
func ParsePropertyID(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: property_id", ErrMissingField)
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("%w: property_id: %v", ErrValidation, err)
		}
		id, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return 0, fmt.Errorf("%w: property_id must be an integer", ErrValidation)
		}
		return id, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: property_id must be an integer", ErrValidation)
	}
	if id, err := strconv.Atoi(n.String()); err == nil {
		return id, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxWholeFloat {
		return 0, fmt.Errorf("%w: property_id must be an integer", ErrValidation)
	}
	return int(f), nil
}

// trimmed treats an absent field like a blank one.
func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
