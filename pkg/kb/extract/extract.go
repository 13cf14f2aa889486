// Package extract reads course documents into plain text.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// Text returns the plain text of a course document. The format is picked by
// file extension: .pdf, .html/.htm and .txt are supported.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".html", ".htm":
		return htmlText(path)
	case ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return cleanWhitespace(string(b)), nil
	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// pdfText concatenates page text in page order. Pages become paragraph
// boundaries for the chunker.
func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages, keep the rest
			continue
		}
		sb.WriteString(txt)
		sb.WriteString("\n\n")
	}
	return cleanWhitespace(sb.String()), nil
}

// htmlText extracts the main content: scope to main/article when present,
// then headers, paragraphs and list items.
func htmlText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", err
	}

	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection // fallback
	}
	var parts []string
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len(t) > 0 {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n\n")), nil
}

var (
	trailingRX = regexp.MustCompile(`[ \t]+\n`)
	manyNLRX   = regexp.MustCompile(`\n{3,}`)
)

// cleanWhitespace strips carriage returns and trailing spaces and collapses
// newline runs, keeping blank lines as paragraph separators.
func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = trailingRX.ReplaceAllString(s, "\n")
	return manyNLRX.ReplaceAllString(s, "\n\n")
}
