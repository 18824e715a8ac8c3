package compose

import (
	"html/template"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/logfields"
)

type shellData struct {
	Title       string
	BundleTitle string
	Description string
	Keywords    string
	CSSPath     string
	Breadcrumbs template.HTML
	Sidebar     template.HTML
	Body        template.HTML
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}{{if .BundleTitle}} — {{.BundleTitle}}{{end}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .Keywords}}
<meta name="keywords" content="{{.Keywords}}">
{{- end}}
<link rel="stylesheet" href="{{.CSSPath}}">
</head>
<body>
<div class="page">
<nav class="sidebar">
{{.Sidebar}}</nav>
<main class="content">
<nav class="breadcrumbs">{{.Breadcrumbs}}</nav>
{{.Body}}
</main>
</div>
</body>
</html>
`))

// shell wraps a page body in the common document shell. Template execution
// over fixed data only fails on a programming error; the page degrades to the
// bare body rather than failing the build.
func (c *Composer) shell(data shellData) string {
	if data.BundleTitle == "" && data.Title != c.meta.BundleTitle {
		data.BundleTitle = c.meta.BundleTitle
	}
	var b strings.Builder
	if err := shellTemplate.Execute(&b, data); err != nil {
		slog.Warn("Page shell rendering failed, emitting bare body", logfields.Error(err))
		return string(data.Body)
	}
	return b.String()
}
