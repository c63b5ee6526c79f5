package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/dashboard"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/navigation"
	"github.com/trezcool/masomo-console/services/featureapi"
	logsvc "github.com/trezcool/masomo-console/services/logger"
	rediscache "github.com/trezcool/masomo-console/storage/cache/redis"
	"github.com/trezcool/masomo-console/storage/database"
	inmemdb "github.com/trezcool/masomo-console/storage/database/inmem"
	sqlxrepos "github.com/trezcool/masomo-console/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	errAndDie(conf.Validate())

	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	cli := commandLine{
		out:      os.Stdout,
		validate: validate,
		builder:  navigation.NewBuilder(conf.Navigation.RootPath, conf.Navigation.LegacyKeywordClassifier),
		resolver: dashboard.Resolver{RootPath: conf.Navigation.RootPath},
	}

	// set up the catalog
	var catalog feature.Catalog
	switch conf.Catalog.Source {
	case core.CatalogSourceDatabase:
		errAndDie(database.CreateIfNotExist(conf))
		db, err := database.Open(conf)
		errAndDie(err)
		defer db.Close()

		repo := sqlxrepos.NewFeatureRepository(db)
		cli.db = db.DB
		cli.assigner = persistentAssigner(conf.Catalog.Source, repo)
		catalog = repo
	case core.CatalogSourceMemory:
		mem, err := inmemdb.Open()
		errAndDie(err)
		repo := inmemdb.NewFeatureRepository(mem)
		cli.assigner = persistentAssigner(conf.Catalog.Source, repo)
		catalog = repo
	default:
		catalog = featureapi.NewClient(conf)
	}

	if rdb, err := rediscache.Open(context.Background(), conf); err != nil {
		logger.Warn(fmt.Sprintf("redis unavailable: %v", err), err)
	} else if rdb != nil {
		defer rdb.Close()
		cache := rediscache.NewCachedCatalog(catalog, rdb, conf.Catalog.CacheTTL, logger)
		cli.invalidate = cache.Invalidate
	}
	cli.features = feature.NewService(catalog, conf.Catalog.Source, validate, logger, nil)

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
