package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/configuration"
	"github.com/surfedu/searchclient/internal/schema"
)

// Service handles index lifecycle operations.
type Service struct {
	engine             Manager
	decompoundWordList string
	logger             *zap.Logger
}

// New creates an index service. decompoundWordList is the engine side path of
// the Dutch decompound word list, empty when the cluster has none.
func New(engine Manager, decompoundWordList string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{engine: engine, decompoundWordList: decompoundWordList, logger: log}
}

// Schema resolves the schema for an index name. The entity or language comes
// from the name, an empty docType defaults to the document type of the platform.
func (s *Service) Schema(name string, docType domain.DocumentType) (schema.Schema, error) {
	alias, err := configuration.ParseAlias(name)
	if err != nil {
		return schema.Schema{}, err
	}
	platform, err := domain.ParsePlatform(alias.Platform)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("index %q: %w", name, err)
	}
	if docType == "" {
		docType = domain.DocumentTypeFor(platform)
	}

	if domain.IsLanguage(alias.Name) {
		return schema.BuildLegacyLanguage(alias.Name, docType, s.decompoundWordList)
	}
	entity, err := domain.ParseEntity(alias.Name)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("index %q: %w", name, err)
	}
	return schema.Build(entity, docType, s.decompoundWordList)
}

// Create builds the schema for name and creates the index.
func (s *Service) Create(ctx context.Context, name string, docType domain.DocumentType) (schema.Schema, error) {
	sch, err := s.Schema(name, docType)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	body, err := sch.JSON()
	if err != nil {
		return schema.Schema{}, err
	}
	if err := s.engine.CreateIndex(ctx, name, body); err != nil {
		return schema.Schema{}, fmt.Errorf("create index: %w", err)
	}
	s.logger.Info("Index created", zap.String("index", name))
	return sch, nil
}

// Delete removes an index.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.engine.DeleteIndex(ctx, name); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	s.logger.Info("Index deleted", zap.String("index", name))
	return nil
}

// Exists reports whether an index or alias exists.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.engine.IndexExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("index exists: %w", err)
	}
	return ok, nil
}
