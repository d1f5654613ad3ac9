package transit

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DirectoryEntry is one row of the stop directory CSV.
type DirectoryEntry struct {
	Name         string
	Municipality string
	Country      string
	DidocCode    string
	LongCode     string
}

// FullName renders the entry the way the configurator displays stops.
func (e DirectoryEntry) FullName() string {
	if e.Municipality == "" {
		return e.Name
	}
	return fmt.Sprintf("%s (%s, %s)", e.Name, e.Municipality, e.Country)
}

// Directory fetches and searches the stop directory published as a
// semicolon-separated CSV. Only active rows are retained.
type Directory struct {
	url       string
	http      *http.Client
	userAgent string
}

const defaultDirectoryURL = "https://raw.githubusercontent.com/rohanod/arrets/refs/heads/main/arrets.csv"

// NewDirectory builds a Directory client. An empty url uses the published
// dataset.
func NewDirectory(url string, timeout time.Duration) *Directory {
	if strings.TrimSpace(url) == "" {
		url = defaultDirectoryURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Directory{
		url:       url,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Fetch downloads and parses the directory.
func (d *Directory) Fetch(ctx context.Context) ([]DirectoryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}
	return ParseDirectory(resp.Body)
}

// ParseDirectory decodes the CSV stream, keeping active rows that carry a
// stop code.
func ParseDirectory(r io.Reader) ([]DirectoryEntry, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var entries []DirectoryEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if field(record, "Actif") != "Y" {
			continue
		}
		entry := DirectoryEntry{
			Name:         field(record, "Stop"),
			Municipality: field(record, "Municipality"),
			Country:      field(record, "Country"),
			DidocCode:    field(record, "Didoc Code"),
			LongCode:     field(record, "Long Code Stop"),
		}
		if entry.DidocCode == "" && entry.LongCode == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SearchDirectory returns entries matching query, at most limit of them.
// Matching is case-, accent-, and separator-insensitive so that "petit
// lancy", "Petit-Lancy", and "petitlancy" all find the same stop.
func SearchDirectory(entries []DirectoryEntry, query string, limit int) []DirectoryEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	needles := searchVariants(query)

	var matches []DirectoryEntry
	for _, entry := range entries {
		haystack := fmt.Sprintf("%s %s %s %s", entry.Name, entry.LongCode, entry.DidocCode, entry.Municipality)
		if matchesAny(haystack, needles) {
			matches = append(matches, entry)
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

func matchesAny(haystack string, needles []string) bool {
	for _, hay := range searchVariants(haystack) {
		for _, needle := range needles {
			if strings.Contains(hay, needle) {
				return true
			}
		}
	}
	return false
}

func searchVariants(s string) []string {
	base := foldAccents(strings.ToLower(s))
	variants := []string{
		base,
		strings.ReplaceAll(base, " ", "-"),
		strings.ReplaceAll(base, "-", " "),
		strings.ReplaceAll(strings.ReplaceAll(base, " ", ""), "-", ""),
	}
	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// foldAccents strips combining marks after NFD decomposition, so "Genève"
// compares equal to "Geneve".
func foldAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
