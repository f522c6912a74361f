package container

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/sghaida/classhelper/class"
	"github.com/sghaida/classhelper/internal/config"
	"github.com/sghaida/classhelper/internal/logging"
	"github.com/sghaida/classhelper/internal/metrics"
)

// Named values provided to the injector.
const (
	ConfigPathKey = "config.path"
	CatalogsKey   = "class.catalogs"
)

// Catalog defines a set of classes on a registry, usually a generated
// RegisterClasses function.
type Catalog func(*class.Registry) error

// ConfigService holds the loaded configuration.
type ConfigService struct {
	Config *config.Config
	Path   string
}

// NewConfig loads the configuration from the path provided under ConfigPathKey.
func NewConfig(i do.Injector) (*ConfigService, error) {
	path := do.MustInvokeNamed[string](i, ConfigPathKey)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return &ConfigService{Config: cfg, Path: path}, nil
}

// LoggerService wraps the zerolog logger built from configuration.
type LoggerService struct {
	Logger *zerolog.Logger
	closer io.Closer
}

// NewLogger creates the logger from the logging section.
func NewLogger(i do.Injector) (*LoggerService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)

	logger, closer, err := logging.NewLogger(cfgSvc.Config.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &LoggerService{Logger: &logger, closer: closer}, nil
}

// Shutdown implements do.Shutdowner and releases a file output.
func (s *LoggerService) Shutdown() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// MetricsService owns the Prometheus registry the class metrics are registered on.
// Collector is nil when metrics are disabled.
type MetricsService struct {
	Gatherer  *prometheus.Registry
	Collector *metrics.Collector
}

// NewMetrics creates the collector when metrics are enabled.
func NewMetrics(i do.Injector) (*MetricsService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)

	promReg := prometheus.NewRegistry()
	svc := &MetricsService{Gatherer: promReg}
	if !cfgSvc.Config.Metrics.Enabled {
		return svc, nil
	}

	collector, err := metrics.New(cfgSvc.Config.Metrics.NamespaceOrDefault(), promReg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	svc.Collector = collector
	return svc, nil
}

// classMetrics returns the collector as class.Metrics, or nil when disabled.
func (s *MetricsService) classMetrics() class.Metrics {
	if s.Collector == nil {
		return nil
	}
	return s.Collector
}

// RegistryService holds the application's class registry.
type RegistryService struct {
	Registry *class.Registry
}

// NewRegistry builds the registry, applies the catalogs provided under CatalogsKey
// and registers the configured overrides. Any failure aborts startup.
func NewRegistry(i do.Injector) (*RegistryService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)
	metricsSvc := do.MustInvoke[*MetricsService](i)
	catalogs := do.MustInvokeNamed[[]Catalog](i, CatalogsKey)

	reg := class.New(
		class.WithLogger(*logSvc.Logger),
		class.WithMetrics(metricsSvc.classMetrics()),
	)

	for n, catalog := range catalogs {
		if catalog == nil {
			continue
		}
		if err := catalog(reg); err != nil {
			return nil, fmt.Errorf("failed to apply catalog %d: %w", n, err)
		}
	}

	for _, o := range cfgSvc.Config.Overrides {
		if !reg.RegisterOverride(o.Original, o.Replacement, o.Force) {
			return nil, fmt.Errorf("failed to register override %s -> %s (force=%t)", o.Original, o.Replacement, o.Force)
		}
	}

	logSvc.Logger.Info().
		Str("registry", reg.ID()).
		Int("classes", len(reg.Classes())).
		Int("overrides", len(cfgSvc.Config.Overrides)).
		Msg("class registry ready")

	return &RegistryService{Registry: reg}, nil
}

// RegisterSingletons registers all service providers in dependency order:
// Config, Logger (Config), Metrics (Config), Registry (all of them).
func RegisterSingletons(i do.Injector) {
	do.Provide(i, NewConfig)
	do.Provide(i, NewLogger)
	do.Provide(i, NewMetrics)
	do.Provide(i, NewRegistry)
}
