package main

import (
	"context"
	"flag"
	"os"

	"xnova-server/config"
	"xnova-server/di"
	"xnova-server/util"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default ./config/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		util.NewLogger("info", "json").WithError(err).Fatal("Failed to load config")
	}
	log := util.NewLogger(cfg.Log.Level, cfg.Log.Format)

	container, err := di.NewContainer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Building initial catalog")
	if _, err := container.CatalogRefresherService.RefreshCatalog(); err != nil {
		log.WithError(err).Fatal("Initial catalog refresh failed")
	}
	if _, err := container.MatchService.LoadMatches(); err != nil {
		log.WithError(err).Fatal("Loading open matches failed")
	}
	container.CatalogRefresherService.StartPeriodicJob(ctx, cfg.Catalog.RefreshInterval)

	if err := container.XnovaHttpServer.Start(ctx); err != nil {
		log.WithError(err).Error("Server stopped with error")
		cancel()
		container.Close()
		os.Exit(1)
	}
}
