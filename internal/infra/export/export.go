package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const pdfTitle = "AI Generated Summary"

// ErrEmptySummary is returned when there is nothing to export.
var ErrEmptySummary = errors.New("no summary to export")

// TXT returns the summary as UTF-8 bytes.
func TXT(summary string) ([]byte, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, ErrEmptySummary
	}
	return []byte(summary), nil
}

// PDF lays the summary out on Letter pages: a title, then one block per non-empty line.
func PDF(summary string) ([]byte, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, ErrEmptySummary
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetTitle(pdfTitle, true)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	// Core fonts are cp1252; characters outside it degrade instead of failing.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(0x4f, 0x46, 0xe5)
	doc.MultiCell(0, 12, tr(pdfTitle), "", "L", false)
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(0x11, 0x18, 0x27)
	for _, paragraph := range strings.Split(summary, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		doc.MultiCell(0, 6, tr(paragraph), "", "L", false)
		doc.Ln(3)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
