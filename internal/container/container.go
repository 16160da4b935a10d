package container

import (
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joshua-takyi/watchparty/internal/config"
	"github.com/joshua-takyi/watchparty/internal/models"
	"github.com/joshua-takyi/watchparty/internal/poster"
	"github.com/joshua-takyi/watchparty/internal/scheduler"
	"github.com/joshua-takyi/watchparty/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *slog.Logger
	PartyService *services.PartyService
	AdminService *services.AdminService
	Sweeper      *scheduler.Sweeper
}

// NewContainer wires services over partyRepo. redisClient may be nil, in
// which case poster lookups are not cached.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	partyRepo models.PartyRepo,
	redisClient *redis.Client,
) *Container {
	resolver := poster.NewResolver(newPosterLookup(cfg, logger, redisClient), cfg.DefaultPoster, logger)

	partyService := services.NewPartyService(partyRepo, resolver, models.DefaultGenres,
		services.WithLocation(time.Local))
	adminService := services.NewAdminService(partyRepo, cfg.AdminSecret, time.Local)
	sweeper := scheduler.New(partyService, cfg.SweepInterval, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		PartyService: partyService,
		AdminService: adminService,
		Sweeper:      sweeper,
	}
}

func newPosterLookup(cfg *config.Config, logger *slog.Logger, redisClient *redis.Client) poster.Lookup {
	if !cfg.PosterLookupEnabled() {
		logger.Info("OMDB_API_KEY not set, poster lookup disabled")
		return nil
	}

	var lookup poster.Lookup = poster.NewOMDbClient(cfg.OMDbBaseURL, cfg.OMDbAPIKey, cfg.PosterTimeout)
	if redisClient != nil {
		lookup = poster.NewCachedLookup(lookup, redisClient, cfg.PosterCacheTTL, logger)
	}
	return lookup
}
