package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/cache"
	"github.com/dcode-github/property_chatbot/backend/matcher"
	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/store"
)

type ContextKey string

// AdminKey holds the authenticated admin username in a request context.
const AdminKey = ContextKey("admin")

type budgetRequest struct {
	Budget json.RawMessage `json:"budget"`
}

// GetProperties answers a budget with up to three matching listings.
func GetProperties(propertyStore store.PropertyStore, matchCache cache.MatchCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid budget request body: %v", err)
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid budget"})
			return
		}

		budget, err := matcher.ParseBudget(req.Budget)
		if err != nil {
			log.Printf("Rejecting budget: %v", err)
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid budget"})
			return
		}

		cached, gen, ok := matchCache.Get(r.Context(), budget)
		if ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		properties, err := propertyStore.List(r.Context())
		if err != nil {
			log.Printf("Error listing properties: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Error fetching properties"})
			return
		}

		matches := matcher.Match(properties, budget)
		matchCache.Set(r.Context(), gen, budget, matches)
		writeJSON(w, http.StatusOK, matches)
	}
}

// Health reports liveness.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
