package searchclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/surfedu/searchclient/internal/config"
	"github.com/surfedu/searchclient/internal/db"
	dbElastic "github.com/surfedu/searchclient/internal/db/elasticsearch"
	dbOpenSearch "github.com/surfedu/searchclient/internal/db/opensearch"
	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/configuration"
	"github.com/surfedu/searchclient/internal/metrics"
	healthuc "github.com/surfedu/searchclient/internal/usecase/health"
	indexuc "github.com/surfedu/searchclient/internal/usecase/index"
	searchuc "github.com/surfedu/searchclient/internal/usecase/search"
)

// Client is the searchclient entry point. It is safe for concurrent use.
type Client struct {
	engine    db.Engine
	searchSvc *searchuc.Service
	indexSvc  *indexuc.Service
	healthSvc *healthuc.Service
	logger    *zap.Logger
}

// New creates a Client for one search configuration.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{driver: config.DriverOpenSearch}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	searchCfg, err := resolveConfiguration(cfg)
	if err != nil {
		return nil, fmt.Errorf("searchclient: %w", err)
	}

	if cfg.metricsReg != nil {
		if err := metrics.RegisterEngineMetrics(cfg.metricsReg); err != nil {
			return nil, fmt.Errorf("searchclient: %w", err)
		}
	}

	inner := cfg.engine
	if inner == nil {
		if len(cfg.addrs) == 0 {
			return nil, errors.New("searchclient: engine address required (use WithOpenSearch or WithElasticsearch)")
		}
		inner, err = createEngine(cfg)
		if err != nil {
			return nil, err
		}
	}
	engine := db.NewInstrumentedEngine(inner, cfg.driver, cfg.logger.Named("engine"))

	if cfg.waitReady > 0 {
		if err := engine.WaitForReady(context.Background(), cfg.waitReady); err != nil {
			engine.Close()
			return nil, fmt.Errorf("searchclient: engine not ready: %w", err)
		}
	}

	return wireClient(engine, searchCfg, cfg)
}

// NewFromConfig creates a Client from a loaded configuration file.
func NewFromConfig(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	base := []Option{
		WithBasicAuth(cfg.Engine.Username, cfg.Engine.Password),
		WithTimeout(time.Duration(cfg.Engine.TimeoutSec) * time.Second),
		WithPlatform(cfg.Search.Platform),
		WithPresets(cfg.Search.Presets...),
		WithAliasPrefix(cfg.Search.AliasPrefix),
		WithStatsConcurrency(cfg.Search.StatsWorkers),
		WithDecompoundWordList(cfg.Index.DecompoundWordList),
		WithLogger(logger),
	}
	switch cfg.Engine.Driver {
	case config.DriverElasticsearch:
		base = append(base, WithElasticsearch(cfg.Engine.Addrs...))
	default:
		base = append(base, WithOpenSearch(cfg.Engine.Addrs...))
	}
	if cfg.Engine.InsecureTLS {
		base = append(base, WithInsecureTLS())
	}
	if cfg.Engine.CheckConnection {
		base = append(base, WithReadinessCheck(time.Duration(cfg.Engine.ReadinessTimeout)*time.Second))
	}
	return New(append(base, opts...)...)
}

func resolveConfiguration(cfg *clientConfig) (configuration.Configuration, error) {
	var searchCfg configuration.Configuration
	if cfg.configuration != nil {
		searchCfg = *cfg.configuration
	} else {
		platform, err := domain.ParsePlatform(cfg.platform)
		if err != nil {
			return configuration.Configuration{}, err
		}
		registry, err := configuration.DefaultRegistry()
		if err != nil {
			return configuration.Configuration{}, err
		}
		searchCfg, err = registry.Build(platform, cfg.presets, configuration.DefaultPreset)
		if err != nil {
			return configuration.Configuration{}, err
		}
	}
	if cfg.aliasPrefix != "" {
		searchCfg = searchCfg.WithAliasPrefix(cfg.aliasPrefix)
	}
	return searchCfg, nil
}

func createEngine(cfg *clientConfig) (db.Engine, error) {
	switch cfg.driver {
	case config.DriverOpenSearch:
		s, err := dbOpenSearch.NewStore(dbOpenSearch.Config{
			Addrs:       cfg.addrs,
			Username:    cfg.username,
			Password:    cfg.password,
			Timeout:     cfg.timeout,
			InsecureTLS: cfg.insecureTLS,
		})
		if err != nil {
			return nil, fmt.Errorf("searchclient: create opensearch store: %w", err)
		}
		return s, nil
	case config.DriverElasticsearch:
		s, err := dbElastic.NewStore(dbElastic.Config{
			Addrs:       cfg.addrs,
			Username:    cfg.username,
			Password:    cfg.password,
			Timeout:     cfg.timeout,
			InsecureTLS: cfg.insecureTLS,
		})
		if err != nil {
			return nil, fmt.Errorf("searchclient: create elasticsearch store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("searchclient: unknown driver %q", cfg.driver)
	}
}

func wireClient(engine db.Engine, searchCfg configuration.Configuration, cfg *clientConfig) (*Client, error) {
	searchSvc, err := searchuc.New(engine, searchCfg, cfg.logger.Named("search"), cfg.statsWorkers)
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("searchclient: %w", err)
	}

	cfg.logger.Debug("Client created",
		zap.String("platform", string(searchCfg.Platform())),
		zap.Strings("aliases", searchCfg.Aliases()),
	)

	return &Client{
		engine:    engine,
		searchSvc: searchSvc,
		indexSvc:  indexuc.New(engine, cfg.wordList, cfg.logger.Named("index")),
		healthSvc: healthuc.New(engine, engine, searchCfg.Aliases()),
		logger:    cfg.logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.searchSvc != nil {
		c.searchSvc.Close()
	}
	if c.engine != nil {
		c.engine.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health pings the engine and checks that every searched alias exists.
func (c *Client) Health(ctx context.Context) HealthReport {
	return c.healthSvc.Check(ctx)
}

// Configuration returns the search configuration of the client.
func (c *Client) Configuration() Configuration {
	return c.searchSvc.Configuration()
}
