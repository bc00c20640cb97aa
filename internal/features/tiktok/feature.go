package tiktok

import (
	"context"
	"net/http"

	"tiktok-carousel/internal/carousel"
	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/handlers"
	"tiktok-carousel/internal/features/tiktok/migrations"
	"tiktok-carousel/internal/features/tiktok/services"
)

// Feature serves the profile feed endpoint and the carousel page
type Feature struct {
	*core.BaseFeature
	config       *Config
	db           *core.Database
	migrationMgr *migrations.Manager
	scraper      *services.ScraperService
	fetchLog     *services.FetchLogService
	feedService  *services.FeedService
	apiHandler   *handlers.APIHandler
	webHandler   *handlers.WebHandler
}

// NewFeature creates the TikTok feature. db may be nil, which disables the fetch log.
func NewFeature(logger *core.Logger, db *core.Database, config *Config) *Feature {
	base := core.NewBaseFeature("tiktok", "TikTok profile feed and carousel", config.Enabled, logger)
	featureLogger := base.Logger()

	scraper := services.NewScraperService(featureLogger, &services.ScraperConfig{
		BaseURL:        config.BaseURL,
		UserAgent:      config.UserAgent,
		AcceptLanguage: config.AcceptLanguage,
		Timeout:        config.FetchTimeout,
	})

	f := &Feature{
		BaseFeature: base,
		config:      config,
		db:          db,
		scraper:     scraper,
	}

	// Keep the handler's interfaces nil, not typed-nil, when logging is off
	var fetchLogger services.FetchLogger
	var history handlers.HistoryProvider
	if config.FetchLog && db != nil {
		f.migrationMgr = migrations.NewManager(db, featureLogger)
		f.fetchLog = services.NewFetchLogService(db, featureLogger)
		fetchLogger = f.fetchLog
		history = f.fetchLog
	}

	f.feedService = services.NewFeedService(scraper, fetchLogger, featureLogger)
	f.apiHandler = handlers.NewAPIHandler(featureLogger, f.feedService, history, config.DefaultUser, config.DefaultCount)
	f.webHandler = handlers.NewWebHandler(featureLogger, carousel.Config{
		APIURL:         carousel.DefaultAPIURL,
		MaxVideos:      config.DefaultCount,
		EmbedScriptURL: config.EmbedScriptURL,
	}, f.feedService, config.DefaultUser, config.APIBaseURL, &http.Client{Timeout: config.FetchTimeout})

	return f
}

// Init validates configuration and prepares the fetch log
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return core.NewFeatureError(f.Name(), "invalid configuration", err)
	}

	if f.migrationMgr != nil {
		if err := f.migrationMgr.Migrate(ctx); err != nil {
			return core.NewFeatureError(f.Name(), "failed to migrate fetch log", err)
		}
	}

	f.Logger().Info("TikTok feature initialized",
		"default_user", f.config.DefaultUser,
		"fetch_log", f.fetchLog != nil,
	)
	return nil
}

// Routes returns the HTTP routes for the TikTok feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		// Web routes
		{Method: http.MethodGet, Path: "/", Handler: f.webHandler.CarouselPage},

		// API routes
		{Method: http.MethodGet, Path: "/api/tiktoks", Handler: f.apiHandler.GetVideos},
		{Method: http.MethodGet, Path: "/api/tiktoks/history", Handler: f.apiHandler.GetHistory},
	}
}

// Report publishes the fetch log state on /features
func (f *Feature) Report(ctx context.Context) (map[string]any, error) {
	details := map[string]any{
		"default_user": f.config.DefaultUser,
		"fetch_log":    f.fetchLog != nil,
	}
	if f.migrationMgr == nil {
		return details, nil
	}

	pending, err := f.migrationMgr.Pending(ctx)
	if err != nil {
		return nil, core.NewDatabaseError("failed to read migration state", err)
	}
	details["pending_migrations"] = len(pending)
	return details, nil
}
