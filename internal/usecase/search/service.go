package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/surfedu/searchclient/internal/db"
	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/configuration"
	"github.com/surfedu/searchclient/internal/domain/document"
	"github.com/surfedu/searchclient/internal/domain/fieldref"
	"github.com/surfedu/searchclient/internal/domain/search/explain"
	"github.com/surfedu/searchclient/internal/domain/search/filter"
	"github.com/surfedu/searchclient/internal/domain/search/request"
	"github.com/surfedu/searchclient/internal/domain/search/result"
	"github.com/surfedu/searchclient/internal/logger"
	"github.com/surfedu/searchclient/internal/schema"
)

// DefaultStatsWorkers bounds concurrent count requests of Stats.
const DefaultStatsWorkers = 4

// Service runs searches for a single search configuration.
type Service struct {
	engine Engine
	cfg    configuration.Configuration
	query  queryBuilder
	pool   *ants.Pool
	logger *zap.Logger
}

// New creates a search service. statsWorkers <= 0 uses DefaultStatsWorkers.
func New(engine Engine, cfg configuration.Configuration, log *zap.Logger, statsWorkers int) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if statsWorkers <= 0 {
		statsWorkers = DefaultStatsWorkers
	}
	pool, err := ants.NewPool(statsWorkers)
	if err != nil {
		return nil, fmt.Errorf("create stats pool: %w", err)
	}
	return &Service{
		engine: engine,
		cfg:    cfg,
		query:  queryBuilder{cfg: cfg},
		pool:   pool,
		logger: log,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Configuration returns the configuration the service searches with.
func (s *Service) Configuration() configuration.Configuration { return s.cfg }

// begin tags ctx with a request id and a logger carrying it.
func (s *Service) begin(ctx context.Context, op string) (context.Context, *zap.Logger) {
	ctx, id := db.EnsureRequestID(ctx)
	log := s.logger.With(zap.String("op", op), zap.String("request_id", id))
	return logger.ContextWithLogger(ctx, log), log
}

// Search runs a full text search with optional filters, facets and ordering.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.SearchResult, error) {
	ctx, _ = s.begin(ctx, "search")

	indices, body, err := s.query.search(req)
	if err != nil {
		return result.SearchResult{}, err
	}
	resp, err := s.engine.Search(ctx, indices, body)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return s.parseSearchResult(resp)
}

// Aggregations returns facet counts for all filter fields without documents.
func (s *Service) Aggregations(ctx context.Context, text string, filters []filter.Filter) (result.SearchResult, error) {
	req, err := request.New(request.Params{Text: text, Filters: filters, Aggregate: true})
	if err != nil {
		return result.SearchResult{}, err
	}
	res, err := s.Search(ctx, &req)
	if err != nil {
		return result.SearchResult{}, err
	}
	return res.Stripped(), nil
}

// Drilldowns returns facet counts for the named fields without documents.
//
// Deprecated: use Aggregations, which counts every filter field.
func (s *Service) Drilldowns(
	ctx context.Context, names []string, text string, filters []filter.Filter,
) (result.SearchResult, error) {
	req, err := request.New(request.Params{Text: text, Filters: filters, DrilldownNames: names})
	if err != nil {
		return result.SearchResult{}, err
	}
	res, err := s.Search(ctx, &req)
	if err != nil {
		return result.SearchResult{}, err
	}
	return res.Stripped(), nil
}

// Autocomplete returns completions that start with text, shortest first.
func (s *Service) Autocomplete(ctx context.Context, text string) ([]string, error) {
	ctx, _ = s.begin(ctx, "autocomplete")

	resp, err := s.engine.Search(ctx, s.cfg.Aliases(), s.query.autocomplete(text))
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	seen := make(map[string]struct{})
	var options []string
	for _, suggestion := range resp.Suggest[autocompleteKey] {
		for _, option := range suggestion.Options {
			for _, input := range completionInputs(option.Source[schema.CompletionField]) {
				if _, ok := seen[input]; ok {
					continue
				}
				seen[input] = struct{}{}
				options = append(options, input)
			}
		}
	}

	// The engine also suggests fuzzy matches, only exact prefixes are kept.
	prefix := foldCase(text)
	matching := make([]string, 0, len(options))
	for _, option := range options {
		if strings.HasPrefix(foldCase(option), prefix) {
			matching = append(matching, option)
		}
	}
	slices.SortFunc(matching, func(a, b string) int {
		if d := utf8.RuneCountInString(a) - utf8.RuneCountInString(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return matching, nil
}

// completionInputs reads the indexed completion inputs of a suggestion source.
func completionInputs(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case map[string]any:
		return completionInputs(t["input"])
	}
	inputs, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	return inputs
}

func foldCase(s string) string {
	return strings.ToLower(schema.ASCIIFold(s))
}

// GetDocumentsByID fetches documents by identifier. Results follow the order of
// the requested ids and ids without a document are dropped.
func (s *Service) GetDocumentsByID(ctx context.Context, lookup *request.Lookup) (result.SearchResult, error) {
	ctx, _ = s.begin(ctx, "get_documents_by_id")

	if lookup.IDField() == request.IDFieldExternal && !slices.ContainsFunc(s.cfg.Entities(), hasExternalID) {
		return result.SearchResult{}, fmt.Errorf("%w: organizations have no external id, look them up by srn",
			domain.ErrInvalidRequest)
	}

	ids := lookup.IDs()
	if lookup.IDField() == request.IDFieldExternal {
		cleaned := make([]string, len(ids))
		for i, id := range ids {
			cleaned[i] = CleanExternalID(id)
		}
		ids = cleaned
	}

	resp, err := s.engine.Search(ctx, s.cfg.Aliases(), s.query.lookup(lookup, ids))
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("get documents: %w", err)
	}
	res, err := s.parseSearchResult(resp)
	if err != nil {
		return result.SearchResult{}, err
	}

	attribute := lookup.IDField().Attribute()
	byID := make(map[string]document.Document, len(res.Results))
	for _, doc := range res.Results {
		byID[doc.Lookup(attribute)] = doc
	}
	ordered := make([]document.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			ordered = append(ordered, doc)
		}
	}
	res.Results = ordered
	res.Total = result.PreciseTotal(len(ordered))
	return res, nil
}

func hasExternalID(e domain.Entity) bool { return e != domain.EntityOrganizations }

// GetDocumentsBySRN fetches documents by SRN.
func (s *Service) GetDocumentsBySRN(ctx context.Context, srns []string, page, pageSize int) (result.SearchResult, error) {
	lookup, err := request.NewLookup(srns, request.IDFieldSRN, page, pageSize)
	if err != nil {
		return result.SearchResult{}, err
	}
	return s.GetDocumentsByID(ctx, &lookup)
}

// MoreLikeThis returns documents similar to the identified one, searched in the
// index of the given language.
func (s *Service) MoreLikeThis(ctx context.Context, req *request.Similar) (result.Page, error) {
	ctx, log := s.begin(ctx, "more_like_this")

	byLanguage, err := s.cfg.AliasesByLanguage()
	if err != nil {
		return result.Page{}, err
	}

	srn := req.Identifier()
	if req.IsExternal() {
		lookup, err := request.NewLookup([]string{srn}, request.IDFieldExternal, request.DefaultPage, 0)
		if err != nil {
			return result.Page{}, err
		}
		found, err := s.GetDocumentsByID(ctx, &lookup)
		if err != nil {
			return result.Page{}, err
		}
		if len(found.Results) == 0 {
			log.Debug("Reference document not found", zap.String("external_id", srn))
			return result.EmptyPage(), nil
		}
		srn = found.Results[0].Lookup("srn")
	}

	index, ok := byLanguage[req.Language()]
	if !ok {
		index = byLanguage[domain.LanguageUnknown]
	}
	fields := fieldref.Interpolate(s.cfg.MoreLikeThisReferences()...)

	resp, err := s.engine.Search(ctx, []string{index}, s.query.moreLikeThis(fields, index, srn))
	if err != nil {
		return result.Page{}, fmt.Errorf("more like this: %w", err)
	}
	return s.parsePage(resp)
}

// AuthorSuggestions returns documents matching an author name that the author
// is not credited on.
func (s *Service) AuthorSuggestions(ctx context.Context, name string) (result.Page, error) {
	ctx, _ = s.begin(ctx, "author_suggestions")

	resp, err := s.engine.Search(ctx, s.cfg.Aliases(), s.query.authorSuggestions(name))
	if err != nil {
		return result.Page{}, fmt.Errorf("author suggestions: %w", err)
	}
	return s.parsePage(resp)
}

// Stats counts documents. Configurations that mix entities count per entity.
func (s *Service) Stats(ctx context.Context) (result.Stats, error) {
	ctx, log := s.begin(ctx, "stats")

	if !s.cfg.AllowMultiEntityResults() {
		n, err := s.engine.Count(ctx, s.cfg.Aliases())
		if err != nil {
			return result.Stats{}, fmt.Errorf("count: %w", err)
		}
		return result.Stats{Total: n}, nil
	}

	aliases, err := s.cfg.AliasesByEntity()
	if err != nil {
		return result.Stats{}, err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	stats := result.Stats{ByEntity: make(map[string]int, len(aliases))}
	for entity, alias := range aliases {
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			n, err := s.engine.Count(ctx, []string{alias})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("count %s: %w", entity, err))
				return
			}
			stats.ByEntity[string(entity)] = n
			stats.Total += n
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("schedule count %s: %w", entity, submitErr))
			mu.Unlock()
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		log.Error("Stats failed", zap.Int("failures", len(errs)))
		return result.Stats{}, errors.Join(errs...)
	}
	return stats, nil
}

// ExplainResult breaks the score of document srn for text down per term.
func (s *Service) ExplainResult(ctx context.Context, srn, text string) (explain.Explanation, error) {
	ctx, _ = s.begin(ctx, "explain")

	text = strings.TrimSpace(text)
	if text == "" {
		return explain.Explanation{}, fmt.Errorf("%w: empty search text", domain.ErrResultNotFound)
	}

	resp, err := s.engine.Search(ctx, s.cfg.Aliases(), s.query.explain(srn, text))
	if err != nil {
		return explain.Explanation{}, fmt.Errorf("explain: %w", err)
	}
	if len(resp.Hits.Hits) == 0 || resp.Hits.Hits[0].Explanation == nil {
		return explain.Explanation{}, fmt.Errorf("%w: %s does not match %q", domain.ErrResultNotFound, srn, text)
	}

	hit := resp.Hits.Hits[0]
	total := hit.Explanation.Value
	if hit.Score != nil {
		total = *hit.Score
	}
	withRecency := s.cfg.DistanceFeatureField() != ""
	return explain.Parse(srn, total, *hit.Explanation, withRecency), nil
}
