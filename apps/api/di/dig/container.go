package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo-console/apps/api/echo"
	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/dashboard"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/navigation"
	"github.com/trezcool/masomo-console/services/featureapi"
	logsvc "github.com/trezcool/masomo-console/services/logger"
	metricsvc "github.com/trezcool/masomo-console/services/metrics"
	rediscache "github.com/trezcool/masomo-console/storage/cache/redis"
	"github.com/trezcool/masomo-console/storage/database"
	inmemdb "github.com/trezcool/masomo-console/storage/database/inmem"
	sqlxrepos "github.com/trezcool/masomo-console/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

// newDB sets up the postgres database. It returns a nil DB unless the catalog is read from it.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	if conf.Catalog.Source != core.CatalogSourceDatabase {
		return nil
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newRedis returns nil when redis is not configured or unreachable; callers fall back to memory.
func newRedis(conf *core.Config, loggerParam DBLoggerParam) *redis.Client {
	client, err := rediscache.Open(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Warn(fmt.Sprintf("redis unavailable, falling back to memory: %v", err), err)
		return nil
	}
	return client
}

func newMemDB() (*inmemdb.DB, error) {
	return inmemdb.Open()
}

func newCatalog(conf *core.Config, db *sqlx.DB, mem *inmemdb.DB, rdb *redis.Client, logger core.Logger) feature.Catalog {
	var catalog feature.Catalog
	switch conf.Catalog.Source {
	case core.CatalogSourceAPI:
		catalog = featureapi.NewClient(conf)
	case core.CatalogSourceDatabase:
		catalog = sqlxrepos.NewFeatureRepository(db)
	default:
		catalog = inmemdb.NewFeatureRepository(mem)
	}
	if rdb != nil && conf.Catalog.CacheTTL > 0 {
		catalog = rediscache.NewCachedCatalog(catalog, rdb, conf.Catalog.CacheTTL, logger)
	}
	return catalog
}

func newStateStore(conf *core.Config, rdb *redis.Client, mem *inmemdb.DB) navigation.StateStore {
	if rdb != nil {
		return rediscache.NewStateStore(rdb, conf.Session.StateTTL)
	}
	return inmemdb.NewStateStore(mem)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newMetrics(reg *prometheus.Registry) *metricsvc.PrometheusMetrics {
	return metricsvc.NewPrometheusMetrics(reg)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newFeatureService(
	conf *core.Config,
	catalog feature.Catalog,
	validate *validator.Validate,
	logger core.Logger,
	metrics *metricsvc.PrometheusMetrics,
) feature.Fetcher {
	return feature.NewService(catalog, conf.Catalog.Source, validate, logger, metrics)
}

func newNavigationService(
	conf *core.Config,
	features feature.Fetcher,
	states navigation.StateStore,
	logger core.Logger,
	metrics *metricsvc.PrometheusMetrics,
) *navigation.Service {
	builder := navigation.NewBuilder(conf.Navigation.RootPath, conf.Navigation.LegacyKeywordClassifier)
	return navigation.NewService(features, builder, states, logger, metrics)
}

func newDashboardService(conf *core.Config, features feature.Fetcher) *dashboard.Service {
	return dashboard.NewService(features, dashboard.Resolver{RootPath: conf.Navigation.RootPath})
}

type ServerParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Validate      *validator.Validate
	Translator    ut.Translator
	NavigationSvc *navigation.Service
	DashboardSvc  *dashboard.Service
	Metrics       *metricsvc.PrometheusMetrics
	Registry      *prometheus.Registry
	DB            *sqlx.DB
	Redis         *redis.Client
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(&echoapi.Options{
		Conf:           p.Conf,
		Logger:         p.Logger,
		Validate:       p.Validate,
		Translator:     p.Translator,
		NavigationSvc:  p.NavigationSvc,
		DashboardSvc:   p.DashboardSvc,
		Requests:       p.Metrics,
		MetricsHandler: promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}),
		HealthCheck: func(ctx context.Context) error {
			if p.DB != nil {
				if err := database.StatusCheck(ctx, p.DB); err != nil {
					return errors.Wrap(err, "database")
				}
			}
			if p.Redis != nil {
				if err := p.Redis.Ping(ctx).Err(); err != nil {
					return errors.Wrap(err, "redis")
				}
			}
			return nil
		},
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRedis))
	must(c.Provide(newMemDB))
	must(c.Provide(newCatalog))
	must(c.Provide(newStateStore))
	must(c.Provide(newRegistry))
	must(c.Provide(newMetrics))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newFeatureService))
	must(c.Provide(newNavigationService))
	must(c.Provide(newDashboardService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
