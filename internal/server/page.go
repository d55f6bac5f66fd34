package server

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/stepsight/stepsight/pkg/highlight"
	"github.com/stepsight/stepsight/pkg/source"
)

//go:embed templates/page.html.tmpl
var pageTemplateText string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateText))

type sourceEntry struct {
	Origin string
	HTML   template.HTML
}

type pageData struct {
	Title     string
	Graph     template.HTML
	Sources   []sourceEntry
	CodeStyle template.CSS
}

// ComposePage assembles the graph pane and source pane into one HTML
// document. The source block carries the theme's background color, the
// way the original pane chrome did.
func ComposePage(title, graph string, sources []source.Rendered, theme highlight.Theme) (string, error) {
	data := pageData{
		Title: title,
		Graph: template.HTML(graph),
	}
	if bg := theme.BackgroundColor(); bg != "" {
		data.CodeStyle = template.CSS(fmt.Sprintf("background-color: %s; display: block;", bg))
	}
	for _, s := range sources {
		data.Sources = append(data.Sources, sourceEntry{Origin: s.Origin, HTML: template.HTML(s.HTML)})
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("composing page: %w", err)
	}
	return sb.String(), nil
}
