package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/booldo/booldo/internal/model"
)

// GoneVariant selects the message shown on the 410 page.
type GoneVariant string

const (
	// GoneExpired marks an offer whose expiry date has passed.
	GoneExpired GoneVariant = "expired"
	// GoneHidden marks content delisted by its visibility flags.
	GoneHidden GoneVariant = "hidden"
	// GoneMissing marks content that no longer exists at all.
	GoneMissing GoneVariant = "missing"
)

const goneFullHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="robots" content="noindex, nofollow"/>
<title>410 Gone</title>
</head>
<body>
<h1>410 Gone</h1>
{{if eq .Variant "expired"}}<p>This offer has expired{{if .Doc}}{{if .Doc.Expires}} on {{.Doc.Expires}}{{end}}{{end}} and is no longer available.</p>
{{else if eq .Variant "hidden"}}<p>This content has been removed and is no longer available.</p>
{{else}}<p>The requested resource is no longer available.</p>
{{end}}{{if .Doc}}{{if .Doc.Title}}<p>{{.Doc.Title}}{{if .Doc.Bookmaker}} from {{.Doc.Bookmaker}}{{end}}</p>
{{end}}{{end}}</body>
</html>
`

const goneLiteHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="robots" content="noindex, nofollow"/>
<title>410 Gone</title>
</head>
<body>
<h1>410 Gone</h1>
<p>The requested resource is no longer available.</p>
</body>
</html>
`

// GonePage renders the 410 response body. Crawlers get the full page
// with the document snapshot so the removal reads as intentional;
// browsers get the lightweight page with the same status.
type GonePage struct {
	full *template.Template
	lite *template.Template
}

// NewGonePage parses the page templates.
func NewGonePage() *GonePage {
	return &GonePage{
		full: template.Must(template.New("gone").Parse(goneFullHTML)),
		lite: template.Must(template.New("gone_lite").Parse(goneLiteHTML)),
	}
}

type gonePageData struct {
	Variant GoneVariant
	Doc     *model.GoneDoc
}

// Render writes the 410 status and body. Falls back to the lite page if
// template execution fails.
func (p *GonePage) Render(w http.ResponseWriter, full bool, variant GoneVariant, doc *model.GoneDoc) {
	tmpl := p.lite
	data := gonePageData{Variant: GoneMissing}
	if full {
		tmpl = p.full
		data = gonePageData{Variant: variant, Doc: doc}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		buf.Reset()
		buf.WriteString(goneLiteHTML)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusGone)
	_, _ = w.Write(buf.Bytes())
}
