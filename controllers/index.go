package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/views"
)

// Index serves the chatbot page.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := views.RenderIndex(w, views.IndexPage{Title: "Find Your Property"}); err != nil {
			log.Printf("Error rendering chatbot page: %v", err)
		}
	}
}
