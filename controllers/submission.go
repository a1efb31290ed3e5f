package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/services"
)

type submissionMessages struct {
	success string
	failure string
}

var (
	interestMessages = submissionMessages{
		success: "Your interest has been submitted successfully!",
		failure: "Failed to submit your interest. Please try again later.",
	}
	visitMessages = submissionMessages{
		success: "Your visit has been booked successfully!",
		failure: "Failed to book your visit. Please try again later.",
	}
)

func SubmitInterest(submissions *services.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.InterestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid interest payload: %v", err)
			writeJSON(w, http.StatusBadRequest, errorStatus("Invalid data"))
			return
		}
		writeSubmissionResult(w, submissions.SubmitInterest(r.Context(), req), interestMessages)
	}
}

func BookVisit(submissions *services.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.VisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid visit payload: %v", err)
			writeJSON(w, http.StatusBadRequest, errorStatus("Invalid data"))
			return
		}
		writeSubmissionResult(w, submissions.BookVisit(r.Context(), req), visitMessages)
	}
}

func writeSubmissionResult(w http.ResponseWriter, err error, msgs submissionMessages) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, models.StatusResponse{Status: models.StatusSuccess, Message: msgs.success})
	case errors.Is(err, models.ErrMissingField):
		log.Printf("Submission rejected: %v", err)
		writeJSON(w, http.StatusBadRequest, errorStatus("All fields are required"))
	case errors.Is(err, models.ErrInvalidInput):
		log.Printf("Submission rejected: %v", err)
		writeJSON(w, http.StatusBadRequest, errorStatus("Invalid data"))
	case errors.Is(err, models.ErrNotFound):
		log.Printf("Submission for unknown property: %v", err)
		writeJSON(w, http.StatusNotFound, errorStatus("Property not found"))
	default:
		log.Printf("Submission failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorStatus(msgs.failure))
	}
}

func errorStatus(message string) models.StatusResponse {
	return models.StatusResponse{Status: models.StatusError, Message: message}
}
