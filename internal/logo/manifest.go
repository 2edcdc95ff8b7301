package logo

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/nhl-season/internal/storage"
)

// ManifestName is the file written next to the logos.
const ManifestName = "manifest.json"

// Manifest lists the logos saved by one run.
type Manifest struct {
	GeneratedAt string   `json:"generated_at"`
	Logos       []File   `json:"logos"`
	Failed      []string `json:"failed,omitempty"`
}

// SVGViewBox returns the viewBox of the document's root <svg> element, or ""
// when there is none.
func SVGViewBox(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	svg := doc.Find("svg").First()
	if svg.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"viewBox", "viewbox"} {
		if v, ok := svg.Attr(attr); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// WriteManifest stores manifest.json in the logo directory.
func WriteManifest(store *storage.Storage, summary Summary, now time.Time) (string, error) {
	m := Manifest{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Logos:       summary.Saved,
		Failed:      summary.Failed,
	}
	if m.Logos == nil {
		m.Logos = []File{}
	}
	return store.WriteJSON(ManifestName, m)
}
