package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a catalog search.
type SearchParams struct {
	Query string

	Genres  []string
	Moods   []string
	MinYear int
	MaxYear int

	Limit  int
	Offset int

	SortBy    string // "relevance", "title", "rating", "recent"
	SortOrder string // "asc", "desc"

	IncludeFacets bool
	FacetFields   []string
	Highlight     bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		FacetFields:   []string{"genres", "moods"},
		Highlight:     true,
	}
}

// SearchResult is the envelope handed back to the API layer.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitempty"`
}

// SearchHit is one matching book.
type SearchHit struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Score       float64           `json:"score"`
	Title       string            `json:"title"`
	Authors     []string          `json:"authors,omitempty"`
	Genres      []string          `json:"genres,omitempty"`
	ReleaseYear int               `json:"release_year,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Genres []FacetCount `json:"genres,omitempty"`
	Moods  []FacetCount `json:"moods,omitempty"`
}

// FacetCount is one facet value with its document count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search runs a query against the catalog index.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	req.SortBy(sortOrder(params))
	req.Fields = []string{"id", "slug", "title", "authors", "genres", "release_year", "rating"}

	if params.IncludeFacets {
		for _, field := range params.FacetFields {
			req.AddFacet(field, bleve.NewFacetRequest(field, 20))
		}
	}
	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("title")
		req.Highlight.AddField("authors")
	}

	raw, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  raw.Total,
		TookMs: raw.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(raw.Hits)),
	}
	for _, hit := range raw.Hits {
		result.Hits = append(result.Hits, convertHit(hit.ID, hit.Score, hit.Fields, hit.Fragments))
	}
	if params.IncludeFacets {
		result.Facets = SearchFacets{
			Genres: facetCounts(raw, "genres"),
			Moods:  facetCounts(raw, "moods"),
		}
	}

	return result, nil
}

func convertHit(id string, score float64, fields map[string]any, fragments map[string][]string) SearchHit {
	hit := SearchHit{
		ID:      id,
		Score:   score,
		Authors: stringSliceField(fields["authors"]),
		Genres:  stringSliceField(fields["genres"]),
	}
	hit.Slug, _ = fields["slug"].(string)
	hit.Title, _ = fields["title"].(string)
	if y, ok := fields["release_year"].(float64); ok {
		hit.ReleaseYear = int(y)
	}
	if r, ok := fields["rating"].(float64); ok {
		hit.Rating = r
	}

	if len(fragments) > 0 {
		hit.Highlights = make(map[string]string, len(fragments))
		for field, frags := range fragments {
			if len(frags) > 0 {
				hit.Highlights[field] = frags[0]
			}
		}
	}
	return hit
}

// stringSliceField normalizes a stored field that bleve returns as either a
// single string or a []any depending on cardinality.
func stringSliceField(field any) []string {
	switch v := field.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// buildSearchQuery combines the text query and active filters with AND;
// with no query and no filters everything matches.
func buildSearchQuery(params SearchParams) query.Query {
	var parts []query.Query

	if params.Query != "" {
		parts = append(parts, textQuery(params.Query))
	}
	if q := termFilter("genres", params.Genres); q != nil {
		parts = append(parts, q)
	}
	if q := termFilter("moods", params.Moods); q != nil {
		parts = append(parts, q)
	}
	if q := yearFilter(params.MinYear, params.MaxYear); q != nil {
		parts = append(parts, q)
	}

	switch len(parts) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return parts[0]
	default:
		return bleve.NewConjunctionQuery(parts...)
	}
}

// textQuery matches any of: title (boosted highest), authors, a
// fuzziness-1 title match for typos, and a title prefix for partial input.
func textQuery(text string) query.Query {
	title := bleve.NewMatchQuery(text)
	title.SetField("title")
	title.SetBoost(3.0)

	authors := bleve.NewMatchQuery(text)
	authors.SetField("authors")
	authors.SetBoost(2.0)

	fuzzy := bleve.NewFuzzyQuery(text)
	fuzzy.SetField("title")
	fuzzy.SetFuzziness(1)
	fuzzy.SetBoost(0.8)

	parts := []query.Query{title, authors, fuzzy}

	if len(text) >= 2 {
		prefix := bleve.NewPrefixQuery(strings.ToLower(text))
		prefix.SetField("title")
		prefix.SetBoost(0.5)
		parts = append(parts, prefix)
	}

	return bleve.NewDisjunctionQuery(parts...)
}

// termFilter matches documents holding any of the exact values.
func termFilter(field string, values []string) query.Query {
	if len(values) == 0 {
		return nil
	}
	parts := make([]query.Query, len(values))
	for i, value := range values {
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)
		parts[i] = tq
	}
	return bleve.NewDisjunctionQuery(parts...)
}

func yearFilter(minYear, maxYear int) query.Query {
	if minYear <= 0 && maxYear <= 0 {
		return nil
	}
	lo := float64(minYear)
	hi := float64(maxYear)
	if maxYear <= 0 {
		hi = 3000
	}
	rq := bleve.NewNumericRangeQuery(&lo, &hi)
	rq.SetField("release_year")
	return rq
}

func facetCounts(result *bleve.SearchResult, name string) []FacetCount {
	facet, ok := result.Facets[name]
	if !ok {
		return nil
	}
	counts := make([]FacetCount, 0, len(facet.Terms.Terms()))
	for _, term := range facet.Terms.Terms() {
		counts = append(counts, FacetCount{Value: term.Term, Count: term.Count})
	}
	return counts
}

func sortOrder(params SearchParams) []string {
	var field string
	switch params.SortBy {
	case "title":
		field = "title"
	case "rating":
		field = "rating"
	case "recent":
		field = "created_at"
	default:
		return []string{"-_score"}
	}

	asc := params.SortOrder == "asc"
	// Title sorts ascending unless desc is asked for; rating and recency
	// default to descending.
	if params.SortBy == "title" {
		asc = params.SortOrder != "desc"
	}
	if asc {
		return []string{field}
	}
	return []string{"-" + field}
}
