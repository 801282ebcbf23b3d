package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

const (
	pageMargin   = 15.0
	footerMargin = 25.0
	lineHeight   = 6.0
)

type rgb struct{ r, g, b int }

var (
	colorInk     = rgb{17, 24, 39}
	colorMuted   = rgb{107, 114, 128}
	colorBand    = rgb{17, 24, 39}
	colorAccent  = rgb{37, 99, 235}
	colorRule    = rgb{229, 231, 235}
	colorTableBg = rgb{243, 244, 246}
	colorPaid    = rgb{22, 163, 74}
	colorWhite   = rgb{255, 255, 255}
)

// canvas is an A4 page stream shared by every document kind. Dates are pinned
// to the record and catalog keys are sorted, so equal input gives equal bytes.
type canvas struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	company string
	width   float64
	height  float64
}

func newCanvas(title, company string, stamp time.Time) *canvas {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.AliasNbPages("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerMargin)

	c := &canvas{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		company: company,
	}
	c.width, c.height = pdf.GetPageSize()

	pdf.SetTitle(title, true)
	pdf.SetAuthor(company, true)
	pdf.SetCreator("nexus", true)
	pdf.SetFooterFunc(c.footer)
	return c
}

func (c *canvas) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *canvas) color(col rgb) {
	c.pdf.SetTextColor(col.r, col.g, col.b)
}

func (c *canvas) fill(col rgb) {
	c.pdf.SetFillColor(col.r, col.g, col.b)
}

func (c *canvas) rule(y float64) {
	c.pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	c.pdf.Line(pageMargin, y, c.width-pageMargin, y)
}

func (c *canvas) footer() {
	pdf := c.pdf
	pdf.SetY(-18)
	c.rule(pdf.GetY())

	pdf.SetFont("Helvetica", "", 8)
	c.color(colorMuted)
	half := (c.width - 2*pageMargin) / 2
	pdf.CellFormat(half, 10, c.tr(c.company), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
}

// ensureSpace starts a new page when h millimetres would run into the
// footer. Auto page break only covers single cells.
func (c *canvas) ensureSpace(h float64) {
	if c.pdf.GetY()+h > c.height-footerMargin {
		c.pdf.AddPage()
	}
}

// wrap breaks text into lines no wider than width in the current font.
// Explicit newlines are kept.
func (c *canvas) wrap(text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(c.tr(text), "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		for _, line := range c.pdf.SplitLines([]byte(para), width) {
			lines = append(lines, string(line))
		}
	}
	return lines
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}
