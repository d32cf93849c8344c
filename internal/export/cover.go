// Package export renders a trip into shareable documents: a cover page in
// Markdown or HTML, and a flat day-by-category budget table in JSON or CSV.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yuin/goldmark"

	"github.com/pkordes/travelbook/internal/domain"
)

const (
	coverDateLayout = "02/01/2006"
	noDate          = "Date non spécifiée"
)

// Cover builds the cover summary of a trip. mapImage may be nil.
func Cover(trip domain.Trip, mapImage []byte) domain.CoverSummary {
	return domain.CoverSummary{
		TripName:  trip.Name,
		DateRange: DateRange(trip),
		DayCount:  len(trip.Days),
		MapImage:  mapImage,
	}
}

// DateRange formats "Du 01/04/2024 au 05/04/2024", substituting
// "Date non spécifiée" for a missing end.
func DateRange(trip domain.Trip) string {
	first, last, ok := trip.DateRange()
	if !ok {
		return fmt.Sprintf("Du %s au %s", noDate, noDate)
	}
	return fmt.Sprintf("Du %s au %s", formatDate(first), formatDate(last))
}

func formatDate(d domain.Date) string {
	if d.IsZero() {
		return noDate
	}
	return d.Format(coverDateLayout)
}

// Markdown renders the cover page.
func Markdown(c domain.CoverSummary) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(c.TripName))
	fmt.Fprintf(&b, "%s\n\n", c.DateRange)
	fmt.Fprintf(&b, "%d Jours\n", c.DayCount)
	if len(c.MapImage) > 0 {
		fmt.Fprintf(&b, "\n![Carte du voyage](%s)\n", dataURL(c.MapImage))
	}
	return b.Bytes()
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}</body>
</html>
`))

// HTML renders the cover page as a standalone document. The body is the
// Markdown rendering converted with goldmark.
func HTML(c domain.CoverSummary) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert(Markdown(c), &body); err != nil {
		return nil, fmt.Errorf("export.HTML: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: c.TripName, Body: template.HTML(body.String())})
	if err != nil {
		return nil, fmt.Errorf("export.HTML: %w", err)
	}
	return out.Bytes(), nil
}

func dataURL(img []byte) string {
	return "data:" + mimetype.Detect(img).String() + ";base64," + base64.StdEncoding.EncodeToString(img)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "#", `\#`,
)

// escapeMarkdown keeps user text from being read as markup.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
