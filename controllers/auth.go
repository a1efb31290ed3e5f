package controllers

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/utils"
	"github.com/dcode-github/property_chatbot/backend/views"
)

const (
	LoginPath      = "/admin/login"
	PropertiesPath = "/admin/properties"
)

// SessionManager starts and ends admin sessions on a response.
type SessionManager interface {
	Start(w http.ResponseWriter, username string) error
	End(w http.ResponseWriter)
}

func AdminLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderLogin(w, http.StatusOK, "")
	}
}

func AdminLogin(admin models.Admin, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			log.Printf("Error parsing login form: %v", err)
			renderLogin(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		username := r.PostForm.Get("username")
		password := r.PostForm.Get("password")
		if !checkCredentials(admin, username, password) {
			log.Printf("Invalid admin credentials for user: %s", username)
			renderLogin(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		if err := sessions.Start(w, admin.Username); err != nil {
			log.Printf("Error starting admin session: %v", err)
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			return
		}
		log.Printf("Admin %s logged in", admin.Username)
		http.Redirect(w, r, PropertiesPath, http.StatusSeeOther)
	}
}

func AdminLogout(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.End(w)
		http.Redirect(w, r, LoginPath, http.StatusFound)
	}
}

func checkCredentials(admin models.Admin, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) == 1
	passOK := utils.CheckPasswordHash(password, admin.PasswordHash)
	return userOK && passOK
}

func renderLogin(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.RenderLogin(w, views.LoginPage{Error: message}); err != nil {
		log.Printf("Error rendering login page: %v", err)
	}
}
