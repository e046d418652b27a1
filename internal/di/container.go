package di

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	alertService "github.com/reshetovitsme/product-scout/internal/modules/alerts/service"
	analyticsService "github.com/reshetovitsme/product-scout/internal/modules/analytics/service"
	channelRepo "github.com/reshetovitsme/product-scout/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/product-scout/internal/modules/channel/service"
	syncRepo "github.com/reshetovitsme/product-scout/internal/modules/channelsync/repository"
	syncService "github.com/reshetovitsme/product-scout/internal/modules/channelsync/service"
	contactService "github.com/reshetovitsme/product-scout/internal/modules/contacts/service"
	favoriteService "github.com/reshetovitsme/product-scout/internal/modules/favorites/service"
	feedService "github.com/reshetovitsme/product-scout/internal/modules/feed/service"
	ingestService "github.com/reshetovitsme/product-scout/internal/modules/ingest/service"
	messageRepo "github.com/reshetovitsme/product-scout/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/product-scout/internal/modules/message/service"
	noteService "github.com/reshetovitsme/product-scout/internal/modules/notes/service"
	productRepo "github.com/reshetovitsme/product-scout/internal/modules/product/repository"
	productService "github.com/reshetovitsme/product-scout/internal/modules/product/service"
	savedSearchService "github.com/reshetovitsme/product-scout/internal/modules/savedsearch/service"
	taggingService "github.com/reshetovitsme/product-scout/internal/modules/tagging/service"
	userRepo "github.com/reshetovitsme/product-scout/internal/modules/user/repository"
	userService "github.com/reshetovitsme/product-scout/internal/modules/user/service"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/database"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	httpServer "github.com/reshetovitsme/product-scout/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/product-scout/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// shutdownTimeout bounds how long in-flight HTTP requests may run on shutdown.
const shutdownTimeout = 10 * time.Second

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Logger
	do.Provide(injector, func(i do.Injector) (*slog.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := logging.New(cfg.LogLevel)
		slog.SetDefault(logger)
		return logger, nil
	})

	// Register Database
	do.Provide(injector, func(i do.Injector) (*sqlx.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		db, err := database.Open(context.Background(), cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, oops.With("driver", cfg.DatabaseDriver, "context", "failed to open database").Wrap(err)
		}
		return db, nil
	})

	provideRepositories(injector)
	provideServices(injector)
	provideWorkspace(injector)
	provideTransports(injector)

	return injector, nil
}

func provideRepositories(injector do.Injector) {
	// Register Product Repository
	do.Provide(injector, func(i do.Injector) (productRepo.Repository, error) {
		return productRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})

	// Register Channel Repository
	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := channelRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize channel repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Joined Channel Repository
	do.Provide(injector, func(i do.Injector) (syncRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := syncRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize joined channel repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Message Repository
	do.Provide(injector, func(i do.Injector) (messageRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := messageRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize message repository").Wrap(err)
		}
		return repo, nil
	})

	// Register User Repository
	do.Provide(injector, func(i do.Injector) (userRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := userRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize user repository").Wrap(err)
		}
		return repo, nil
	})
}

func provideServices(injector do.Injector) {
	// Register Product Service
	do.Provide(injector, func(i do.Injector) (*productService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		svc := productService.New(do.MustInvoke[productRepo.Repository](i), logger)
		if cfg.SeedFixtures {
			if _, err := svc.SeedSamples(context.Background()); err != nil {
				return nil, oops.With("context", "failed to seed sample catalog").Wrap(err)
			}
		}
		return svc, nil
	})

	// Register Message Service
	do.Provide(injector, func(i do.Injector) (*messageService.Service, error) {
		return messageService.New(do.MustInvoke[messageRepo.Repository](i)), nil
	})

	// Register User Service
	do.Provide(injector, func(i do.Injector) (*userService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return userService.New(do.MustInvoke[userRepo.Repository](i), cfg.AllowedUsers, do.MustInvoke[*slog.Logger](i)), nil
	})

	// Register Channel Service
	do.Provide(injector, func(i do.Injector) (*channelService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[channelRepo.Repository](i)
		products := do.MustInvoke[*productService.Service](i)
		return channelService.New(cfg, repo, products, do.MustInvoke[*slog.Logger](i)), nil
	})

	// Register Joined Channel Service
	do.Provide(injector, func(i do.Injector) (*syncService.Service, error) {
		repo := do.MustInvoke[syncRepo.Repository](i)
		channels := do.MustInvoke[*channelService.Service](i)
		return syncService.New(repo, channels, do.MustInvoke[*slog.Logger](i)), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		channels := do.MustInvoke[*channelService.Service](i)
		products := do.MustInvoke[*productService.Service](i)
		return feedService.New(channels, products), nil
	})

	// Register Analytics Service
	do.Provide(injector, func(i do.Injector) (*analyticsService.Service, error) {
		products := do.MustInvoke[*productService.Service](i)
		channels := do.MustInvoke[*channelService.Service](i)
		return analyticsService.New(products, channels), nil
	})

	// Register Ingest Service
	do.Provide(injector, func(i do.Injector) (*ingestService.Service, error) {
		return ingestService.New(ingestService.Deps{
			Channels: do.MustInvoke[*channelService.Service](i),
			Messages: do.MustInvoke[*messageService.Service](i),
			Products: do.MustInvoke[*productService.Service](i),
			Tagger:   do.MustInvoke[*taggingService.Service](i),
			Alerts:   do.MustInvoke[*alertService.Service](i),
			Contacts: do.MustInvoke[*contactService.Service](i),
			Joined:   do.MustInvoke[*syncService.Service](i),
		}, do.MustInvoke[*slog.Logger](i)), nil
	})
}

// provideWorkspace registers the services backed by JSON collections under storage_path.
func provideWorkspace(injector do.Injector) {
	storage := func(i do.Injector) (string, *slog.Logger) {
		return do.MustInvoke[*config.Config](i).StoragePath, do.MustInvoke[*slog.Logger](i)
	}

	do.Provide(injector, func(i do.Injector) (*noteService.Service, error) {
		return noteService.New(storage(i))
	})
	do.Provide(injector, func(i do.Injector) (*alertService.Service, error) {
		return alertService.New(storage(i))
	})
	do.Provide(injector, func(i do.Injector) (*favoriteService.Service, error) {
		return favoriteService.New(storage(i))
	})
	do.Provide(injector, func(i do.Injector) (*contactService.Service, error) {
		return contactService.New(storage(i))
	})
	do.Provide(injector, func(i do.Injector) (*taggingService.Service, error) {
		path, logger := storage(i)
		return taggingService.New(path, do.MustInvoke[*productService.Service](i), logger)
	})
	do.Provide(injector, func(i do.Injector) (*savedSearchService.Service, error) {
		path, logger := storage(i)
		return savedSearchService.New(path, do.MustInvoke[*productService.Service](i), logger)
	})
}

func provideTransports(injector do.Injector) {
	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpServer.New(cfg, httpServer.Services{
			Products:      do.MustInvoke[*productService.Service](i),
			Channels:      do.MustInvoke[*channelService.Service](i),
			Joined:        do.MustInvoke[*syncService.Service](i),
			Messages:      do.MustInvoke[*messageService.Service](i),
			Feed:          do.MustInvoke[*feedService.Service](i),
			Notes:         do.MustInvoke[*noteService.Service](i),
			Alerts:        do.MustInvoke[*alertService.Service](i),
			Tagging:       do.MustInvoke[*taggingService.Service](i),
			SavedSearches: do.MustInvoke[*savedSearchService.Service](i),
			Favorites:     do.MustInvoke[*favoriteService.Service](i),
			Contacts:      do.MustInvoke[*contactService.Service](i),
			Analytics:     do.MustInvoke[*analyticsService.Service](i),
		}, do.MustInvoke[*slog.Logger](i)), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		return telegramHandler.New(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*userService.Service](i),
			do.MustInvoke[*channelService.Service](i),
			do.MustInvoke[*productService.Service](i),
			do.MustInvoke[*analyticsService.Service](i),
			do.MustInvoke[*ingestService.Service](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	// Register Bot. Only invoked when a token is configured.
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.BotEnabled() {
			return nil, oops.Errorf("telegram bot token is not configured")
		}
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
			bot.WithServerURL(cfg.TelegramAPIURL),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)
		return b, nil
	})
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, oops.With("context", "http shutdown").Wrap(err))
		}
	}

	// Stop channel monitoring
	if channels, err := do.Invoke[*channelService.Service](injector); err == nil && channels != nil {
		channels.Stop()
	}

	if db, err := do.Invoke[*sqlx.DB](injector); err == nil && db != nil {
		if err := db.Close(); err != nil {
			errs = append(errs, oops.With("context", "database close").Wrap(err))
		}
	}

	return errors.Join(errs...)
}
