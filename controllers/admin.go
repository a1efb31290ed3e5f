package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/services"
	"github.com/dcode-github/property_chatbot/backend/views"
	"github.com/gorilla/mux"
)

func AdminProperties(admin *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderProperties(w, r, admin, http.StatusOK, "")
	}
}

func AddProperty(admin *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			log.Printf("Error parsing property form: %v", err)
			renderProperties(w, r, admin, http.StatusBadRequest, "Invalid data: malformed form")
			return
		}

		_, err := admin.AddProperty(r.Context(), propertyForm(r))
		if errors.Is(err, models.ErrInvalidInput) {
			log.Printf("Rejected property: %v", err)
			renderProperties(w, r, admin, http.StatusBadRequest, "Invalid data: "+err.Error())
			return
		}
		if err != nil {
			log.Printf("Error adding property: %v", err)
			renderProperties(w, r, admin, http.StatusInternalServerError, "Failed to save property")
			return
		}

		http.Redirect(w, r, PropertiesPath, http.StatusSeeOther)
	}
}

func DeleteProperty(admin *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			log.Printf("Invalid property ID %s: %v", mux.Vars(r)["id"], err)
			http.Error(w, "Invalid property ID", http.StatusBadRequest)
			return
		}

		if _, err := admin.DeleteProperty(r.Context(), id); err != nil {
			log.Printf("Error deleting property %d: %v", id, err)
			renderProperties(w, r, admin, http.StatusInternalServerError, "Failed to delete property")
			return
		}

		http.Redirect(w, r, PropertiesPath, http.StatusSeeOther)
	}
}

// propertyForm keeps absent keys as nil so they can be reported as missing.
func propertyForm(r *http.Request) models.PropertyForm {
	field := func(name string) *string {
		values, ok := r.PostForm[name]
		if !ok || len(values) == 0 {
			return nil
		}
		return &values[0]
	}
	return models.PropertyForm{
		Name:        field("name"),
		Price:       field("price"),
		Location:    field("location"),
		Image:       field("image"),
		Description: field("description"),
		OwnerEmail:  field("owner_email"),
		OwnerName:   field("owner_name"),
	}
}

func renderProperties(w http.ResponseWriter, r *http.Request, admin *services.AdminService, status int, message string) {
	properties, err := admin.Properties(r.Context())
	if err != nil {
		log.Printf("Error listing properties: %v", err)
		http.Error(w, "Error fetching properties", http.StatusInternalServerError)
		return
	}

	username, _ := r.Context().Value(AdminKey).(string)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	page := views.PropertiesPage{Admin: username, Properties: properties, Error: message}
	if err := views.RenderProperties(w, page); err != nil {
		log.Printf("Error rendering properties page: %v", err)
	}
}
