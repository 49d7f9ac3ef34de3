package searchclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/surfedu/searchclient/internal/config"
	"github.com/surfedu/searchclient/internal/db"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver      string // "opensearch" or "elasticsearch"
	addrs       []string
	username    string
	password    string
	timeout     time.Duration
	insecureTLS bool

	// waitReady polls the engine before New returns when positive.
	waitReady time.Duration

	platform      string
	presets       []string
	configuration *Configuration
	aliasPrefix   string
	statsWorkers  int
	wordList      string

	logger     *zap.Logger
	metricsReg prometheus.Registerer

	// engine replaces the driver, used by tests.
	engine db.Engine
}

// WithOpenSearch connects the client to OpenSearch nodes.
func WithOpenSearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverOpenSearch
		c.addrs = addrs
	})
}

// WithElasticsearch connects the client to Elasticsearch 7 nodes.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverElasticsearch
		c.addrs = addrs
	})
}

// WithBasicAuth sets the engine credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithTimeout bounds connecting to the engine and waiting for its responses.
// Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithInsecureTLS skips certificate verification. Only meant for local clusters.
func WithInsecureTLS() Option {
	return optionFunc(func(c *clientConfig) {
		c.insecureTLS = true
	})
}

// WithReadinessCheck makes New wait up to timeout for the engine to answer.
func WithReadinessCheck(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.waitReady = timeout
	})
}

// WithPlatform selects the platform whose presets are searched.
func WithPlatform(platform string) Option {
	return optionFunc(func(c *clientConfig) {
		c.platform = platform
	})
}

// WithPresets selects presets like "products", "products:multilingual-indices"
// or "projects". Multiple presets are merged into one configuration.
func WithPresets(presets ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.presets = presets
	})
}

// WithConfiguration searches with cfg instead of platform presets.
func WithConfiguration(cfg Configuration) Option {
	return optionFunc(func(c *clientConfig) {
		c.configuration = &cfg
	})
}

// WithAliasPrefix prefixes every alias, for example to search test indices.
func WithAliasPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.aliasPrefix = prefix
	})
}

// WithStatsConcurrency bounds concurrent count requests of Stats. Default: 4.
func WithStatsConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.statsWorkers = n
	})
}

// WithDecompoundWordList sets the engine side path of the Dutch compound word
// list used by created indices.
func WithDecompoundWordList(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.wordList = path
	})
}

// WithLogger enables structured logging. Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers engine request metrics on reg. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

func withEngine(e db.Engine) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine = e
	})
}
