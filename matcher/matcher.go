// Package matcher selects listings that fit a buyer's budget.
package matcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dcode-github/property_chatbot/backend/models"
)

const (
	// MaxResults caps how many listings a single match returns.
	MaxResults = 3

	lowerBand = 0.9
	upperBand = 1.1
)

// Match returns up to MaxResults properties priced within 10% of budget,
// falling back to properties at or under budget when none are that close.
// Store order is preserved and the result is never nil.
func Match(properties []models.Property, budget float64) []models.Property {
	low, high := budget*lowerBand, budget*upperBand

	matches := filter(properties, func(p models.Property) bool {
		return p.Price >= low && p.Price <= high
	})
	if len(matches) == 0 {
		matches = filter(properties, func(p models.Property) bool {
			return p.Price <= budget
		})
	}
	return matches
}

func filter(properties []models.Property, keep func(models.Property) bool) []models.Property {
	out := make([]models.Property, 0, MaxResults)
	for _, p := range properties {
		if len(out) == MaxResults {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ParseBudget reads a budget given either as a JSON number or as a string
// holding one.
func ParseBudget(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: budget is required", models.ErrInvalidInput)
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("%w: budget: %v", models.ErrInvalidInput, err)
		}
		text = strings.TrimSpace(text)
	}

	budget, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return 0, fmt.Errorf("%w: budget %q is not a number", models.ErrInvalidInput, text)
	}
	return budget, nil
}
