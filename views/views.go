// Package views renders the chatbot and admin HTML pages and serves the
// chatbot's static assets.
package views

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/notify"
)

//go:embed templates/*.html
var files embed.FS

//go:embed static
var assets embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"price": notify.FormatPrice,
}).ParseFS(files, "templates/*.html"))

type IndexPage struct {
	Title string
}

type LoginPage struct {
	Error string
}

type PropertiesPage struct {
	Admin      string
	Properties []models.Property
	Error      string
}

func RenderIndex(w io.Writer, page IndexPage) error {
	return pages.ExecuteTemplate(w, "index.html", page)
}

func RenderLogin(w io.Writer, page LoginPage) error {
	return pages.ExecuteTemplate(w, "login.html", page)
}

func RenderProperties(w io.Writer, page PropertiesPage) error {
	return pages.ExecuteTemplate(w, "properties.html", page)
}

// Static is the chatbot's script and stylesheet tree, rooted so that
// "js/chatbot.js" is served as /static/js/chatbot.js.
func Static() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
