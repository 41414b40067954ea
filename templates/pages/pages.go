// Package pages holds the server-rendered pages as templ components.
package pages

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
	"github.com/saadkhan011/calcrew-frontend/pkg/view"
)

//go:embed *.html
var files embed.FS

var tmpl = template.Must(template.New("pages").Funcs(template.FuncMap{
	"genericFailure": func() string { return checkout.MsgGenericFailure },
}).ParseFS(files, "*.html"))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}

// Donate renders the checkout step held in p.
func Donate(p view.DonatePage) templ.Component {
	return component("donate", p)
}

type errorData struct {
	Status     int
	StatusText string
	Message    string
	RequestID  string
	Flash      *view.Flash
}

func Error(status int, msg, requestID string, flash *view.Flash) templ.Component {
	return component("error", errorData{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    msg,
		RequestID:  requestID,
		Flash:      flash,
	})
}
