package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	buildinadapter "focusflow/internal/modules/build/adapter/in"
	buildoutadapter "focusflow/internal/modules/build/adapter/out"
	buildservice "focusflow/internal/modules/build/service"
	buildusecase "focusflow/internal/modules/build/usecase"
	focusinadapter "focusflow/internal/modules/focus/adapter/in"
	focusoutadapter "focusflow/internal/modules/focus/adapter/out"
	focusservice "focusflow/internal/modules/focus/service"
	focususecase "focusflow/internal/modules/focus/usecase"
	inventoryinadapter "focusflow/internal/modules/inventory/adapter/in"
	inventoryoutadapter "focusflow/internal/modules/inventory/adapter/out"
	inventoryservice "focusflow/internal/modules/inventory/service"
	inventoryusecase "focusflow/internal/modules/inventory/usecase"
	notifyinadapter "focusflow/internal/modules/notify/adapter/in"
	notifyoutadapter "focusflow/internal/modules/notify/adapter/out"
	notifyservice "focusflow/internal/modules/notify/service"
	notifyusecase "focusflow/internal/modules/notify/usecase"
	tasksinadapter "focusflow/internal/modules/tasks/adapter/in"
	tasksoutadapter "focusflow/internal/modules/tasks/adapter/out"
	tasksservice "focusflow/internal/modules/tasks/service"
	tasksusecase "focusflow/internal/modules/tasks/usecase"
	walletinadapter "focusflow/internal/modules/wallet/adapter/in"
	walletoutadapter "focusflow/internal/modules/wallet/adapter/out"
	walletservice "focusflow/internal/modules/wallet/service"
	walletusecase "focusflow/internal/modules/wallet/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/database"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/logging"
	"focusflow/internal/platform/metrics"
	"focusflow/internal/platform/settings"
)

// Options tune process-level concerns that differ between the TUI and the
// one-shot commands.
type Options struct {
	// LogToFile sends logs to the data dir instead of stderr so they do not
	// tear the alt screen.
	LogToFile bool
	// Store overrides the settings backend chosen by the config.
	Store settings.Store
}

type App struct {
	Config   config.Config
	Logger   hclog.Logger
	Settings *settings.Settings
	Metrics  *metrics.Metrics

	FocusCLI     focusinadapter.CLIHandler
	WalletCLI    walletinadapter.CLIHandler
	InventoryCLI inventoryinadapter.CLIHandler
	TasksCLI     tasksinadapter.CLIHandler
	BuildCLI     buildinadapter.CLIHandler
	NotifyCLI    notifyinadapter.CLIHandler

	ledger    *inventoryservice.LedgerService
	fileStore *settings.FileStore
	db        *sql.DB
	closers   []io.Closer

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logPath := ""
	if opts.LogToFile {
		logPath = cfg.LogPath
	}
	logger, logCloser, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Path: logPath})
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, Metrics: metrics.New(), closers: []io.Closer{logCloser}}

	store := opts.Store
	if store == nil {
		store, err = app.openSettings(ctx)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	app.Settings = settings.New(store)

	app.db, err = database.Open(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	app.closers = append(app.closers, app.db)

	app.wire()
	return app, nil
}

func (a *App) openSettings(ctx context.Context) (settings.Store, error) {
	switch a.Config.SettingsBackend {
	case config.SettingsBackendRedis:
		store, err := settings.NewRedisStore(ctx, settings.RedisOptions{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
			Prefix:   a.Config.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		a.Logger.Debug("settings backend", "backend", "redis", "addr", a.Config.RedisAddr)
		return store, nil
	default:
		store, err := settings.NewFileStore(a.Config.SettingsPath)
		if err != nil {
			return nil, err
		}
		a.fileStore = store
		a.Logger.Debug("settings backend", "backend", "file", "path", a.Config.SettingsPath)
		return store, nil
	}
}

func (a *App) wire() {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	cfg := a.Config

	walletUC := walletusecase.NewInteractor(walletservice.NewWalletService(
		walletoutadapter.NewSettingsBalanceStore(a.Settings),
		a.Metrics,
	))

	a.ledger = inventoryservice.NewLedgerService(clk, ids, inventoryoutadapter.NewSettingsOwnedItemStore(a.Settings), a.Logger.Named("inventory"))
	inventoryUC := inventoryusecase.NewInteractor(a.ledger, inventoryservice.NewStoreService(
		a.ledger,
		inventoryoutadapter.NewWalletAdapter(walletUC),
		inventoryoutadapter.NewSettingsIconStore(a.Settings),
	))

	buildUC := buildusecase.NewInteractor(buildservice.NewCanvasService(
		clk,
		ids,
		buildoutadapter.NewSQLiteItemStore(a.db),
		buildoutadapter.NewSettingsClearFlag(a.Settings),
		a.Logger.Named("build"),
	))

	notifyLogger := a.Logger.Named("notify")
	slack := notifyservice.NewSlackSink(notifyoutadapter.NewSlackClient(a.Settings, notifyoutadapter.SlackOptions{
		BaseURL:    cfg.SlackBaseURL,
		RatePerSec: cfg.SlackRatePerSec,
		Timeout:    cfg.SlackTimeout,
	}))
	plugins := notifyservice.NewPluginService(
		notifyoutadapter.NewFileManifestStore(cfg.PluginsPath),
		notifyoutadapter.NewGRPCHost(notifyLogger.Named("plugin")),
		notifyLogger,
	)
	dispatcher := notifyservice.NewDispatcher([]notifyservice.Sink{slack, plugins}, a.Metrics, notifyLogger, cfg.SlackTimeout)
	notifyUC := notifyusecase.NewInteractor(dispatcher, slack, plugins)

	focusUC := focususecase.NewInteractor(
		focusservice.NewLifecycleService(
			clk,
			ids,
			focusoutadapter.NewSettingsRunStateStore(a.Settings),
			focusoutadapter.NewSQLiteSessionStore(a.db),
		),
		focusoutadapter.NewWalletAdapter(walletUC),
		focusoutadapter.NewInventoryPassLedger(inventoryUC),
		focusoutadapter.NewNotifyAdapter(notifyUC),
		focusoutadapter.NewBuildAdapter(buildUC),
		a.Metrics,
		a.Logger.Named("focus"),
	)

	tasksUC := tasksusecase.NewInteractor(
		tasksservice.NewTaskService(clk, ids, tasksoutadapter.NewSQLiteTaskStore(a.db)),
		tasksservice.NewReminderService(
			tasksoutadapter.NewSettingsReminderAccess(a.Settings),
			tasksoutadapter.NewMarkdownReminderSource(cfg.RemindersDir),
			a.Logger.Named("reminders"),
		),
	)

	a.FocusCLI = focusinadapter.NewCLIHandler(focusUC)
	a.WalletCLI = walletinadapter.NewCLIHandler(walletUC)
	a.InventoryCLI = inventoryinadapter.NewCLIHandler(inventoryUC)
	a.TasksCLI = tasksinadapter.NewCLIHandler(tasksUC)
	a.BuildCLI = buildinadapter.NewCLIHandler(buildUC)
	a.NotifyCLI = notifyinadapter.NewCLIHandler(notifyUC)
}

// Background starts the long-running watchers: owned-item sync, file
// settings polling and, when metricsAddr is set, the metrics endpoint. They
// stop on Close.
func (a *App) Background(ctx context.Context, metricsAddr string) {
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.ledger.Sync(ctx)
	}()
	if a.fileStore != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.fileStore.Watch(ctx, a.Config.SettingsPoll)
		}()
	}
	if metricsAddr != "" {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.Logger.Info("serving metrics", "addr", metricsAddr)
			if err := a.Metrics.Serve(ctx, metricsAddr); err != nil {
				a.Logger.Error("metrics server stopped", "error", err)
			}
		}()
	}
}

// Drain gives in-flight notifications the configured window to finish.
func (a *App) Drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.Config.NotifyDrainWindow)
	defer cancel()
	a.NotifyCLI.Drain(ctx)
}

func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
