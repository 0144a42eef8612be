package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/donseba/go-partial"
	"github.com/donseba/go-partial/connector"
	"github.com/gaqzi/passepartout"
	"github.com/gaqzi/passepartout/ppdefaults"
)

//go:embed templates
var templates embed.FS

const standardLayout = "layouts/standard.html"

// renderer draws full pages in the standard layout and the fragments htmx swaps in.
// Both read the same templates, shared pieces live in templates/partials as named templates.
type renderer struct {
	pp      *passepartout.Passepartout
	partial *partial.Service
}

func newRenderer() renderer {
	fsys, err := passepartout.FSWithoutPrefix(templates, "templates")
	if err != nil {
		panic(err)
	}

	partials := &ppdefaults.PartialsWithCommon{FS: fsys, CommonDir: "partials"}

	return renderer{
		pp: passepartout.New(
			ppdefaults.NewLoaderBuilder().
				WithDefaults(fsys).
				TemplateLoader(ppdefaults.NewCachedLoader(&ppdefaults.TemplateByNameLoader{FS: fsys})).
				PartialsFor(partials.Load).
				TemplateConfig(template.New("")).
				Build(),
		),
		partial: partial.NewService(&partial.Config{
			Connector: connector.NewHTMX(&connector.Config{
				UseURLQuery: true,
			}),
			UseCache: true,
		}),
	}
}

// page renders page inside the standard layout, data is available to the templates as .Data.
func (rr renderer) page(w http.ResponseWriter, status int, page string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	return rr.pp.RenderInLayout(w, standardLayout, page, map[string]any{"Data": data})
}

// fragment renders p on its own, its ID is the id of the element it replaces.
func (rr renderer) fragment(w http.ResponseWriter, r *http.Request, p *partial.Partial) error {
	layout := rr.partial.NewLayout().FS(templates)
	layout.Set(p)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return layout.WriteWithRequest(r.Context(), w, r)
}

// withCommon lists the fragment's entry template first, followed by the shared partials it uses.
func withCommon(entry string, common ...string) []string {
	files := []string{"templates/" + entry}
	for _, c := range common {
		files = append(files, "templates/partials/"+c)
	}

	return files
}
