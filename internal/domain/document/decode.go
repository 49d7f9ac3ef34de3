package document

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/surfedu/searchclient/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// aliases maps a source key onto the attribute it fills, per kind.
var aliases = map[Kind]map[string]string{
	KindLearningMaterial: {
		"publisher_date":         "published_at",
		"disciplines_normalized": "disciplines",
	},
	KindResearchProduct: {
		"publisher_date": "published_at",
		"technical_type": "type",
		"publishers":     "parties",
	},
}

// multilingualTerms lists attributes that may arrive as {"keyword": ..., "nl": ..., "en": ...}.
var multilingualTerms = map[Kind][]string{
	KindLearningMaterial: {"disciplines", "study_vocabulary", "consortium"},
}

// Decode builds a typed document of the given kind from an engine _source.
// The source map is not modified.
func Decode(kind Kind, source map[string]any) (Document, error) {
	data, err := normalize(kind, source)
	if err != nil {
		return nil, err
	}

	var doc interface {
		Document
		finalize()
	}
	switch kind {
	case KindLearningMaterial:
		doc = &LearningMaterial{}
	case KindResearchProduct:
		doc = &ResearchProduct{}
	case KindProject:
		doc = &Project{}
	case KindPerson:
		doc = &Person{}
	case KindOrganization:
		doc = &Organization{}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, kind)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           doc,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeHook,
			dateHook,
			providerHook,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidDocument, kind, err)
	}

	doc.finalize()

	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s: field %s failed %q", domain.ErrInvalidDocument, kind,
				verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDocument, kind, err)
	}
	return doc, nil
}

func normalize(kind Kind, source map[string]any) (map[string]any, error) {
	data := make(map[string]any, len(source))
	for k, v := range source {
		data[k] = v
	}
	for from, to := range aliases[kind] {
		if v, ok := data[from]; ok {
			data[to] = v
			delete(data, from)
		}
	}
	for _, attr := range multilingualTerms[kind] {
		terms, ok := data[attr].(map[string]any)
		if !ok {
			continue
		}
		keyword, ok := terms["keyword"]
		if !ok {
			return nil, fmt.Errorf("%w: multilingual terms %q did not specify a keyword property",
				domain.ErrInvalidDocument, attr)
		}
		data[attr] = keyword
	}
	return data, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"2006-01",
}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func timeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s, _ := data.(string)
	if s == "" {
		return time.Time{}, nil
	}
	return parseTime(s)
}

func dateHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(Date{}) {
		return data, nil
	}
	s, _ := data.(string)
	if s == "" {
		return Date{}, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return Date{Time: t}, nil
}

// providerHook accepts a bare string where a Provider object is expected.
func providerHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(Provider{}) {
		return data, nil
	}
	return map[string]any{"name": data}, nil
}
