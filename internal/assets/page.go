package assets

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// PageName is the template name the page document is parsed under.
const PageName = "index"

// LoadPage reads the page document at path, converts it from charset to
// UTF-8 and parses it as an html/template named PageName.
func LoadPage(path, charset string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load page document: %w", err)
	}
	text, err := decodeToUTF8(data, charset)
	if err != nil {
		return nil, fmt.Errorf("load page document %s: %w", path, err)
	}
	tmpl, err := template.New(PageName).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse page document %s: %w", path, err)
	}
	return tmpl, nil
}

// decodeToUTF8 converts bytes from the named charset to a UTF-8 string
func decodeToUTF8(data []byte, charset string) (string, error) {
	charset = normalizeCharsetName(charset)
	if charset == "" || charset == "utf-8" {
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset: %s", charset)
	}
	if enc == nil {
		return string(data), nil
	}

	result, _, err := transform.String(enc.NewDecoder(), string(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode from %s: %w", charset, err)
	}
	return result, nil
}

// normalizeCharsetName maps common aliases onto names htmlindex knows
func normalizeCharsetName(charset string) string {
	normalized := strings.ToLower(strings.TrimSpace(charset))
	switch normalized {
	case "iso-8859-15", "iso8859-15", "iso_8859-15", "latin-9", "latin9":
		return "iso-8859-15"
	case "iso-8859-1", "iso8859-1", "iso_8859-1", "latin-1", "latin1":
		return "iso-8859-1"
	case "windows-1252", "cp1252", "win1252":
		return "windows-1252"
	case "utf-8", "utf8":
		return "utf-8"
	case "us-ascii", "ascii":
		return "windows-1252"
	default:
		return normalized
	}
}
