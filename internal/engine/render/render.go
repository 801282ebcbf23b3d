package render

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"nexus/internal/engine/finance"
	"nexus/internal/platform/config"
	"nexus/internal/platform/metrics"
)

const contentTypePDF = "application/pdf"

// Output is a rendered document held in memory.
type Output struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Linker builds the public URL for a share token.
type Linker interface {
	URL(token string) string
}

type Renderer struct {
	company  config.CompanyConfig
	money    *finance.Formatter
	invoices Linker
	metrics  *metrics.Metrics
}

// NewRenderer returns a renderer. invoiceLinks may be nil, in which case
// shared invoices are drawn without a QR code.
func NewRenderer(company config.CompanyConfig, invoiceLinks Linker, m *metrics.Metrics) *Renderer {
	return &Renderer{
		company:  company,
		money:    finance.NewFormatter(company.Currency, company.Locale),
		invoices: invoiceLinks,
		metrics:  m,
	}
}

func (r *Renderer) companyName(fromSettings string) string {
	if fromSettings != "" {
		return fromSettings
	}
	return r.company.Name
}

func invoiceFilename(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "Invoice-" + id + ".pdf"
}

func proposalFilename(title, id string) string {
	slug := slugify(title)
	if slug == "" {
		slug = slugify(id)
	}
	return "proposal-" + slug + ".pdf"
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slugify lowercases s, folds accents and joins alphanumeric runs with "-".
func slugify(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(folded) {
		if c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
			b.WriteRune(c)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > 60 {
		out = strings.TrimSuffix(out[:60], "-")
	}
	return out
}

// displayDate turns a stored YYYY-MM-DD into "May 17, 2024".
func displayDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}
