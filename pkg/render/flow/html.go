package flow

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/presenter"
)

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// Script sources for the browser graph library and its React runtime.
const (
	reactURL     = "https://unpkg.com/react@18.3.1/umd/react.production.min.js"
	reactDOMURL  = "https://unpkg.com/react-dom@18.3.1/umd/react-dom.production.min.js"
	reactFlowURL = "https://unpkg.com/reactflow@11.11.4/dist/umd/index.js"
	reactFlowCSS = "https://unpkg.com/reactflow@11.11.4/dist/style.css"
)

// PageOptions configures [RenderHTML].
type PageOptions struct {
	// Title is the document title. Defaults to "Architecture".
	Title string
	// Mode is the view shown on load.
	Mode diagram.Mode
	// Toggle shows the simple/detailed switch.
	Toggle bool
	// Documents overrides the document shown for a mode. Modes left out
	// are built from the catalog.
	Documents map[diagram.Mode]Document
}

type pageData struct {
	Title       string
	Mode        diagram.Mode
	Toggle      bool
	Placeholder string
	Documents   map[diagram.Mode]Document
	Scripts     []string
	Stylesheet  string
}

// RenderHTML renders a self-contained page holding the documents for every
// view mode. The page paints nothing but a spinner until the graph library
// is available in the browser.
func RenderHTML(opts PageOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Architecture"
	}
	if opts.Mode != diagram.Detailed {
		opts.Mode = diagram.Simple
	}

	docs := make(map[diagram.Mode]Document, len(diagram.Modes))
	for _, m := range diagram.Modes {
		if doc, ok := opts.Documents[m]; ok {
			docs[m] = doc
			continue
		}
		docs[m] = Export(diagram.Build(m))
	}

	var buf bytes.Buffer
	err := page.Execute(&buf, pageData{
		Title:       opts.Title,
		Mode:        opts.Mode,
		Toggle:      opts.Toggle,
		Placeholder: presenter.Placeholder,
		Documents:   docs,
		Scripts:     []string{reactURL, reactDOMURL, reactFlowURL},
		Stylesheet:  reactFlowCSS,
	})
	if err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
