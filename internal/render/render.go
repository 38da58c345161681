// Package render builds the HTML pages of the front end. Every page is the
// fixed shell (navigation bar, stylesheet, title) around a page body, and all
// values are escaped by html/template, including text that came from the
// upstream API.
package render

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page template names, usable with gin's c.HTML once Templates is installed
// through SetHTMLTemplate.
const (
	PageHome        = "home.html"
	PageLogin       = "login.html"
	PageLoginFailed = "login_failed.html"
	PageMap         = "map.html"
	PageReports     = "reports.html"
	PageError       = "error.html"
)

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Templates returns the parsed page set.
func Templates() *template.Template {
	return templates
}

// LoginForm is the data of the login page.
type LoginForm struct {
	DefaultUsername string
	DefaultPassword string
}

// DefaultLoginForm carries the seeded admin account hint.
var DefaultLoginForm = LoginForm{DefaultUsername: "admin", DefaultPassword: "Admin#12345"}

// LoginFailed shows the upstream's rejection text.
type LoginFailed struct {
	Detail string
}

// MapView is the seat grid of one floor plus the signed-in user.
type MapView struct {
	FloorName string
	FloorID   int64
	Seats     []string
	UserName  string
	UserUPN   string
}

// ReportSection is one titled, pre-formatted JSON block.
type ReportSection struct {
	Title string
	JSON  string
}

// ReportsView lists report sections in display order.
type ReportsView struct {
	Sections []ReportSection
}

// ErrorView is the body of every error page.
type ErrorView struct {
	Title   string
	Message string
}
