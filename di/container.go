package di

import (
	"context"
	"fmt"

	"xnova-server/api"
	"xnova-server/api/payment"
	"xnova-server/config"
	"xnova-server/dao/redis"
	"xnova-server/db"
	"xnova-server/metrics"
	"xnova-server/server"
	"xnova-server/server/handlers"
	services "xnova-server/service"
	"xnova-server/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies.
type Container struct {
	Config                  *config.Config
	Clock                   util.Clock
	Metrics                 *metrics.Metrics
	RedisClient             db.RedisClient
	RedisVenueDao           *redis.RedisVenueDAO
	RedisBookingSessionDao  *redis.RedisBookingSessionDAO
	RedisMatchDao           *redis.RedisMatchDAO
	PaymentGateway          payment.Gateway
	VenueService            *services.VenueService
	BookingService          *services.BookingService
	CatalogRefresherService *services.CatalogRefresherService
	MatchService            *services.MatchService
	VenueHandler            *handlers.VenueHandler
	BookingHandler          *handlers.BookingHandler
	MatchHandler            *handlers.MatchHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	XnovaHttpServer         *server.XnovaHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config, log logrus.FieldLogger) (*Container, error) {
	log.WithField("env", cfg.Env).Info("Initializing container")
	ctx := context.Background()
	c := &Container{Config: cfg}

	c.Clock = util.RealClock{Location: cfg.Location()}
	c.Metrics = metrics.New()

	// Redis when configured, otherwise the in-memory client
	if cfg.Redis.Enabled {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, redisInternalClient.Close)

		redisClient := db.NewGeoRedisClient(ctx, redisInternalClient, log)
		if err := redisClient.Ping(); err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}
		c.RedisClient = redisClient
		log.Infof("Using Redis at %s", cfg.Redis.Addr)
	} else {
		c.RedisClient = db.NewMockRedisClient(ctx)
		log.Info("Using in-memory store")
	}

	c.RedisVenueDao = redis.NewRedisVenueDAO(c.RedisClient, log)
	c.RedisBookingSessionDao = redis.NewRedisBookingSessionDAO(c.RedisClient)
	c.RedisMatchDao = redis.NewRedisMatchDAO(c.RedisClient)

	if cfg.Payment.Endpoint == "" {
		c.PaymentGateway = payment.NewLocalGateway(log)
		log.Info("Using local payment gateway")
	} else {
		httpClient := api.NewHTTPClient(cfg.Payment.Endpoint, cfg.Payment.Timeout)
		c.PaymentGateway = payment.NewHTTPGateway(httpClient, cfg.Payment.APIKey)
		log.Infof("Using payment gateway at %s", cfg.Payment.Endpoint)
	}

	// Service layer
	c.VenueService = services.NewVenueService(c.RedisVenueDao, c.Metrics, log)
	c.BookingService = services.NewBookingService(
		c.RedisBookingSessionDao, c.VenueService, c.PaymentGateway, c.Clock, cfg.Booking, c.Metrics, log)
	c.CatalogRefresherService = services.NewCatalogRefresherService(
		c.RedisVenueDao, cfg.Catalog, c.Clock, c.Metrics, log)
	c.MatchService = services.NewMatchService(c.RedisMatchDao, c.Clock, cfg.Catalog.MatchesSeedFile, log)

	// HTTP layer
	c.VenueHandler = handlers.NewVenueHandler(c.VenueService, c.Clock, cfg.Catalog.Days, log)
	c.BookingHandler = handlers.NewBookingHandler(c.BookingService, c.Clock, log)
	c.MatchHandler = handlers.NewMatchHandler(c.MatchService, c.Clock, log)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.VenueHandler, c.BookingHandler, c.MatchHandler, c.Metrics, log, c.MuxRouter)
	c.XnovaHttpServer = server.NewXnovaHttpServer(c.Router, c.MuxRouter, cfg.Server, log)

	return c, nil
}

// Close releases external connections.
func (c *Container) Close() error {
	var first error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
