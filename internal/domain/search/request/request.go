package request

import (
	"fmt"
	"strings"

	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search text length.
	MaxQueryLength  = 4096
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 500
)

// Params holds raw search parameters.
type Params struct {
	Text     string
	Filters  []filter.Filter
	Ordering string
	Page     int
	PageSize int
	MinScore float64
	// Aggregate requests facet counts for every filter field.
	Aggregate bool
	// DrilldownNames requests facet counts for the named fields only.
	DrilldownNames []string
}

// Request is a validated search query.
type Request struct {
	text           string
	filters        []filter.Filter
	ordering       string
	page           int
	pageSize       int
	minScore       float64
	aggregate      bool
	drilldownNames []string
}

// New validates and normalizes search parameters.
// Defaults: page=1, page_size=5. Passing drilldown names implies aggregation.
func New(p Params) (Request, error) {
	if len(p.Text) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: text too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.MinScore < 0 {
		return Request{}, fmt.Errorf("%w: min_score must not be negative", domain.ErrInvalidRequest)
	}
	if p.Ordering != "" && strings.TrimPrefix(p.Ordering, "-") == "" {
		return Request{}, fmt.Errorf("%w: ordering %q names no field", domain.ErrInvalidRequest, p.Ordering)
	}

	return Request{
		text:           strings.TrimSpace(p.Text),
		filters:        append([]filter.Filter(nil), p.Filters...),
		ordering:       p.Ordering,
		page:           p.Page,
		pageSize:       p.PageSize,
		minScore:       p.MinScore,
		aggregate:      p.Aggregate || len(p.DrilldownNames) > 0,
		drilldownNames: append([]string(nil), p.DrilldownNames...),
	}, nil
}

// Text returns the search text, empty for a browse query.
func (r *Request) Text() string { return r.text }

// Filters returns the caller filters.
func (r *Request) Filters() []filter.Filter { return r.filters }

// Ordering returns the sort field, prefixed with "-" for descending order.
func (r *Request) Ordering() string { return r.ordering }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the number of results per page.
func (r *Request) PageSize() int { return r.pageSize }

// From returns the offset of the first result.
func (r *Request) From() int { return r.pageSize * (r.page - 1) }

// MinScore returns the minimum relevance score.
func (r *Request) MinScore() float64 { return r.minScore }

// Aggregate reports whether facet counts are requested.
func (r *Request) Aggregate() bool { return r.aggregate }

// DrilldownNames returns the fields to count, empty for all filter fields.
func (r *Request) DrilldownNames() []string { return r.drilldownNames }

// Order splits the ordering into field and direction ("asc" or "desc").
func (r *Request) Order() (field, direction string) {
	if r.ordering == "" {
		return "", ""
	}
	if field, ok := strings.CutPrefix(r.ordering, "-"); ok {
		return field, "desc"
	}
	return r.ordering, "asc"
}
