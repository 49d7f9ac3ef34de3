package searchclient

import (
	"github.com/surfedu/searchclient/internal/config"
	"github.com/surfedu/searchclient/internal/domain/configuration"
	"github.com/surfedu/searchclient/internal/domain/document"
	"github.com/surfedu/searchclient/internal/domain/search/explain"
	"github.com/surfedu/searchclient/internal/domain/search/filter"
	"github.com/surfedu/searchclient/internal/domain/search/result"
	"github.com/surfedu/searchclient/internal/schema"
	"github.com/surfedu/searchclient/internal/usecase/health"
)

// Public aliases of the internal types the client accepts and returns.
type (
	Config        = config.Config
	Configuration = configuration.Configuration
	Filter        = filter.Filter
	SearchResult  = result.SearchResult
	Page          = result.Page
	Total         = result.Total
	DidYouMean    = result.DidYouMean
	Stats         = result.Stats
	Explanation   = explain.Explanation
	Document      = document.Document
	Schema        = schema.Schema
	HealthReport  = health.Report

	LearningMaterial = document.LearningMaterial
	ResearchProduct  = document.ResearchProduct
	Project          = document.Project
	Person           = document.Person
	Organization     = document.Organization
)

// Document types of product indices.
const (
	DocumentTypeLearningMaterial = "learning_material"
	DocumentTypeResearchProduct  = "research_product"
)

// NewFilter filters field on any of items.
func NewFilter(field string, items ...string) Filter {
	return filter.New(field, items...)
}

// NewRangeFilter filters a date or number field on inclusive bounds. An empty
// bound is open.
func NewRangeFilter(field, lower, upper string) Filter {
	return filter.NewRange(field, lower, upper)
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return config.LoadFile(path)
}

// Presets returns every preset key of the shipped presets, sorted.
func Presets() ([]string, error) {
	reg, err := configuration.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return reg.Keys(), nil
}
