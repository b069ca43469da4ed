// Package extract pulls plain text out of uploaded resumes and job
// descriptions so they can be scored.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind names a supported document format.
type Kind string

// Supported document kinds.
const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindHTML Kind = "html"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeHTML = "text/html"
	mimeText = "text/plain"
)

// Detect works out the document kind from its content, falling back to
// the filename extension when sniffing is inconclusive.
func Detect(data []byte, filename string) (Kind, error) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(mimePDF):
		return KindPDF, nil
	case mt.Is(mimeDOCX):
		return KindDOCX, nil
	case mt.Is(mimeHTML):
		return KindHTML, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".html", ".htm":
		return KindHTML, nil
	case ".txt", ".md", "":
		if mt.Is(mimeText) || len(data) == 0 {
			return KindText, nil
		}
	}
	if mt.Is(mimeText) {
		return KindText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Text extracts plain text from data. Documents that yield only
// whitespace are reported as ErrEmptyDocument.
func Text(data []byte, filename string) (string, Kind, error) {
	kind, err := Detect(data, filename)
	if err != nil {
		return "", "", err
	}

	var text string
	switch kind {
	case KindPDF:
		text, err = pdfText(data)
	case KindDOCX:
		text, err = docxText(data)
	case KindHTML:
		text, err = htmlText(string(data))
	default:
		text = string(data)
	}
	if err != nil {
		return "", kind, err
	}
	if strings.TrimSpace(text) == "" {
		return "", kind, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}
	return text, kind, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", ErrExtract, err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %v", ErrExtract, i, err)
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String()), nil
}

var (
	docxBreak = regexp.MustCompile(`<w:(?:br|cr)(?:\s[^>]*)?/>`)
	docxTab   = regexp.MustCompile(`<w:tab(?:\s[^>]*)?/>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", ErrExtract, err)
	}
	defer doc.Close()

	// The body is WordprocessingML. Paragraph ends and break elements become
	// newlines and tabs become spaces, otherwise adjacent runs fuse into one word.
	body := strings.ReplaceAll(doc.Editable().GetContent(), "</w:p>", "</w:p>\n")
	body = docxBreak.ReplaceAllString(body, "\n")
	body = docxTab.ReplaceAllString(body, " ")
	d, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: docx body: %v", ErrExtract, err)
	}
	return cleanLines(d.Text()), nil
}

func htmlText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", ErrExtract, err)
	}
	doc.Find("script, style, noscript, nav, footer, header").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		return cleanLines(doc.Text()), nil
	}
	return cleanLines(body.Text()), nil
}

// cleanLines collapses runs of spaces within lines and drops blank lines.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
