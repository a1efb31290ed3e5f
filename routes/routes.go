package routes

import (
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/cache"
	"github.com/dcode-github/property_chatbot/backend/controllers"
	"github.com/dcode-github/property_chatbot/backend/middleware"
	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/services"
	"github.com/dcode-github/property_chatbot/backend/store"
	"github.com/dcode-github/property_chatbot/backend/views"
	"github.com/gorilla/mux"
)

type Dependencies struct {
	Store       store.PropertyStore
	Cache       cache.MatchCache
	Submissions *services.SubmissionService
	Admin       *services.AdminService
	Account     models.Admin
	Sessions    *middleware.SessionAuth
	// ImagesDir holds listing images served under /static/images/. Empty
	// disables the route.
	ImagesDir string
}

func Routes(router *mux.Router, d Dependencies) {
	router.HandleFunc("/healthz", controllers.Health()).Methods("GET")

	// Chatbot page and assets
	router.HandleFunc("/", controllers.Index()).Methods("GET")
	if d.ImagesDir != "" {
		router.PathPrefix("/static/images/").Handler(
			http.StripPrefix("/static/images/", http.FileServer(http.Dir(d.ImagesDir)))).Methods("GET")
	}
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(views.Static()))).Methods("GET")

	// Chatbot routes
	router.HandleFunc("/get_properties", controllers.GetProperties(d.Store, d.Cache)).Methods("POST")
	router.HandleFunc("/submit_interest", controllers.SubmitInterest(d.Submissions)).Methods("POST")
	router.HandleFunc("/book_visit", controllers.BookVisit(d.Submissions)).Methods("POST")

	// Admin session routes
	router.HandleFunc(controllers.LoginPath, controllers.AdminLoginPage()).Methods("GET")
	router.HandleFunc(controllers.LoginPath, controllers.AdminLogin(d.Account, d.Sessions)).Methods("POST")
	router.HandleFunc("/admin/logout", controllers.AdminLogout(d.Sessions)).Methods("GET")

	// Routes that require an admin session
	admin := router.PathPrefix("/admin/properties").Subrouter()
	admin.Use(middleware.RequireAuth(d.Sessions, controllers.LoginPath))

	admin.HandleFunc("", controllers.AdminProperties(d.Admin)).Methods("GET")
	admin.HandleFunc("/add", controllers.AddProperty(d.Admin)).Methods("POST")
	admin.HandleFunc("/delete/{id:[0-9]+}", controllers.DeleteProperty(d.Admin)).Methods("POST")
}
