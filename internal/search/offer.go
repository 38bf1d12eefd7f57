package search

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Record field names as returned by the search endpoint.
const (
	FieldTitle     = "TITLE"
	FieldCity      = "VILLE"
	FieldRegion    = "REGION"
	FieldContract  = "TYPE_CONTRAT"
	FieldSkills    = "SKILLS"
	FieldSourceURL = "SOURCE_URL"
)

// Placeholders shown when a record lacks a field.
const (
	PlaceholderTitle    = "Titre non disponible"
	PlaceholderCity     = "Non spécifié"
	PlaceholderRegion   = "Région non spécifiée"
	PlaceholderContract = "Non spécifié"
	PlaceholderURL      = "#"
)

// MaxDisplaySkills bounds the number of skill badges rendered per offer.
const MaxDisplaySkills = 10

// Record is one raw offer as decoded from the search endpoint.
type Record map[string]any

// JobOffer is the display-ready form of a record.
type JobOffer struct {
	Title        string   `json:"title"`
	City         string   `json:"city"`
	Region       string   `json:"region"`
	ContractType string   `json:"contract_type"`
	Skills       []string `json:"skills"`
	SourceURL    string   `json:"source_url"`
}

// SearchResult is one page of offers plus the total match count.
type SearchResult struct {
	Items      []JobOffer `json:"items"`
	TotalCount int        `json:"total_count"`
}

// TotalPages reports the page count for this result.
func (r SearchResult) TotalPages(pageSize int) int {
	return TotalPages(r.TotalCount, pageSize)
}

// ToViewModel maps a raw record into a JobOffer. It never fails.
func ToViewModel(rec Record) JobOffer {
	return JobOffer{
		Title:        textOr(rec, FieldTitle, PlaceholderTitle),
		City:         textOr(rec, FieldCity, PlaceholderCity),
		Region:       textOr(rec, FieldRegion, PlaceholderRegion),
		ContractType: textOr(rec, FieldContract, PlaceholderContract),
		Skills:       ParseSkills(rec[FieldSkills]),
		SourceURL:    textOr(rec, FieldSourceURL, PlaceholderURL),
	}
}

// NewSearchResult converts a page of records.
func NewSearchResult(records []Record, totalCount int) SearchResult {
	items := make([]JobOffer, 0, len(records))
	for _, rec := range records {
		items = append(items, ToViewModel(rec))
	}
	if totalCount < 0 {
		totalCount = 0
	}
	return SearchResult{Items: items, TotalCount: totalCount}
}

func textOr(rec Record, key, fallback string) string {
	switch v := rec[key].(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
		return v
	case bool, map[string]any, []any:
		return fallback
	default:
		return fmt.Sprint(v)
	}
}

// DisplaySkills returns at most MaxDisplaySkills skills for rendering.
func (o JobOffer) DisplaySkills() []string {
	if len(o.Skills) <= MaxDisplaySkills {
		return o.Skills
	}
	return o.Skills[:MaxDisplaySkills]
}

// HasLink reports whether the offer points somewhere other than the placeholder.
func (o JobOffer) HasLink() bool {
	return o.SourceURL != "" && o.SourceURL != PlaceholderURL
}

// SourceHost returns the human-readable host of the offer link, decoding punycode.
func (o JobOffer) SourceHost() string {
	if !o.HasLink() {
		return ""
	}
	u, err := url.Parse(o.SourceURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if display, err := idna.Display.ToUnicode(host); err == nil {
		return display
	}
	return host
}
