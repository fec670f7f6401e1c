package pdf

import (
	"regexp"
	"strings"
)

// Offer documents stamp a handful of business fields on their first pages,
// in German or English. Extraction is regex-based over preprocessed text;
// missing fields fall back to fixed defaults so the metadata keys are
// always present.

type fieldPattern struct {
	name    string
	pattern *regexp.Regexp
}

var fieldPatterns = []fieldPattern{
	{"valid_until", regexp.MustCompile(`(?i)(?:Gültig bis|Valid until)\s*[:\s]*([\d/]+)`)},
	{"client_name", regexp.MustCompile(`(?i)(?:Client|Kunde)\s*[:\s]*([\S ]+?)(?:\s*\b(?:Quote No\.|Quote|Angebotsnummer|Date|Contact|Contents|Project Lead|Projektnummer)\b)`)},
	{"offer_name", regexp.MustCompile(`(?i)(?:Angebot|Quote)\s*[:\s]*([\S ]+?)(?:\s*\b(?:Datum|Date|Valid until|Contact|Project Lead|Projektleiter|Projektnummer)\b)`)},
	{"project_lead", regexp.MustCompile(`(?i)(?:Project\s*Lead|Projektleiter)\s*[:\s]*([\w\s.]+?)(?:\s*(?:Contact|Kontakt|Project Number|Quote Number|Valid until|$))`)},
}

var fieldDefaults = map[string]string{
	"valid_until":  "01/01/2024",
	"client_name":  "Unknown Client",
	"offer_name":   "Generic Offer",
	"project_lead": "Not Assigned",
}

var (
	splitContact  = regexp.MustCompile(`Conta\s*ct`)
	splitLeiter   = regexp.MustCompile(`Projektl\s*eiter`)
	splitLead     = regexp.MustCompile(`Proje\s*ct\s*Lead`)
	labelLinejoin = regexp.MustCompile(`(Client|Kunde|Projektleiter|Project Lead|Gültig bis|Valid until)\s*\n\s*`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// preprocessText repairs labels split across line breaks or broken by
// extraction artifacts so the field patterns can match.
func preprocessText(text string) string {
	text = splitContact.ReplaceAllString(text, "Contact")
	text = splitLeiter.ReplaceAllString(text, "Projektleiter")
	text = splitLead.ReplaceAllString(text, "Project Lead")
	text = labelLinejoin.ReplaceAllString(text, "$1 ")
	return multiSpace.ReplaceAllString(text, " ")
}

// extractFields pulls the business fields out of first-pages text,
// applying defaults for anything not found.
func extractFields(text string) map[string]string {
	text = preprocessText(text)

	fields := make(map[string]string, len(fieldPatterns))
	for _, fp := range fieldPatterns {
		if m := fp.pattern.FindStringSubmatch(text); m != nil {
			fields[fp.name] = strings.TrimSpace(m[1])
		}
	}
	for name, def := range fieldDefaults {
		if _, ok := fields[name]; !ok {
			fields[name] = def
		}
	}
	return fields
}
