package searchclient

import (
	"context"

	"github.com/surfedu/searchclient/internal/domain/search/request"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	Filters []Filter
	// Ordering is a field name, prefixed with "-" for descending order.
	Ordering string
	Page     int
	PageSize int
	MinScore float64
	// Aggregate adds facet counts for every filter field.
	Aggregate bool
}

// LookupOptions configures fetching documents by identifier.
type LookupOptions struct {
	// BySRN looks documents up by srn instead of their source system id.
	BySRN    bool
	Page     int
	PageSize int
}

// SimilarOptions configures MoreLikeThis.
type SimilarOptions struct {
	// Language selects the language index in the multilingual layout.
	Language string
	// BySRN treats the identifier as an srn instead of a source system id.
	BySRN bool
}

// Search runs a full text search. A nil opts returns the first page.
func (c *Client) Search(ctx context.Context, text string, opts *SearchOptions) (SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	req, err := request.New(request.Params{
		Text:      text,
		Filters:   opts.Filters,
		Ordering:  opts.Ordering,
		Page:      opts.Page,
		PageSize:  opts.PageSize,
		MinScore:  opts.MinScore,
		Aggregate: opts.Aggregate,
	})
	if err != nil {
		return SearchResult{}, err
	}
	return c.searchSvc.Search(ctx, &req)
}

// Aggregations returns facet counts of every filter field without documents.
func (c *Client) Aggregations(ctx context.Context, text string, filters []Filter) (SearchResult, error) {
	return c.searchSvc.Aggregations(ctx, text, filters)
}

// Drilldowns returns facet counts of the named fields without documents.
//
// Deprecated: use Aggregations.
func (c *Client) Drilldowns(ctx context.Context, names []string, text string, filters []Filter) (SearchResult, error) {
	return c.searchSvc.Drilldowns(ctx, names, text, filters)
}

// Autocomplete returns search texts starting with text, shortest first.
func (c *Client) Autocomplete(ctx context.Context, text string) ([]string, error) {
	return c.searchSvc.Autocomplete(ctx, text)
}

// GetDocumentsByID fetches documents in the order of ids. Unknown ids are
// left out. ids are source system ids, legacy forms included, unless
// opts.BySRN is set.
func (c *Client) GetDocumentsByID(ctx context.Context, ids []string, opts *LookupOptions) (SearchResult, error) {
	if opts == nil {
		opts = &LookupOptions{}
	}
	field := request.IDFieldExternal
	if opts.BySRN {
		field = request.IDFieldSRN
	}
	lookup, err := request.NewLookup(ids, field, opts.Page, opts.PageSize)
	if err != nil {
		return SearchResult{}, err
	}
	return c.searchSvc.GetDocumentsByID(ctx, &lookup)
}

// GetDocumentsBySRN fetches documents by srn.
func (c *Client) GetDocumentsBySRN(ctx context.Context, srns []string, page, pageSize int) (SearchResult, error) {
	return c.searchSvc.GetDocumentsBySRN(ctx, srns, page, pageSize)
}

// MoreLikeThis returns documents similar to the one identified. identifier is
// a source system id unless opts.BySRN is set.
func (c *Client) MoreLikeThis(ctx context.Context, identifier string, opts *SimilarOptions) (Page, error) {
	if opts == nil {
		opts = &SimilarOptions{}
	}
	req, err := request.NewSimilar(identifier, opts.Language, !opts.BySRN)
	if err != nil {
		return Page{}, err
	}
	return c.searchSvc.MoreLikeThis(ctx, &req)
}

// AuthorSuggestions returns documents that mention an author without crediting them.
func (c *Client) AuthorSuggestions(ctx context.Context, name string) (Page, error) {
	return c.searchSvc.AuthorSuggestions(ctx, name)
}

// Stats counts the searchable documents.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	return c.searchSvc.Stats(ctx)
}

// ExplainResult breaks the score of document srn for text down per term.
func (c *Client) ExplainResult(ctx context.Context, srn, text string) (Explanation, error) {
	return c.searchSvc.ExplainResult(ctx, srn, text)
}
