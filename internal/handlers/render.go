package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates
var templatesFS embed.FS

// pages maps template name to a parsed layout+page pair. Parsed once at
// startup so a broken template fails fast.
var pages = func() map[string]*template.Template {
	out := make(map[string]*template.Template)
	for _, name := range []string{"login.html", "register.html", "index.html"} {
		out[name] = template.Must(template.ParseFS(templatesFS,
			"templates/layout.html", "templates/"+name))
	}
	return out
}()

func render(w http.ResponseWriter, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "error", err)
	}
}
