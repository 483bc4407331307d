package main

import (
	"fmt"
	"os"
	"runtime"

	"photo-wall/internal/config"
	"photo-wall/internal/controllers"
	"photo-wall/internal/logger"
	"photo-wall/internal/models"
	"photo-wall/internal/services"
	"photo-wall/internal/shutdown"
	"photo-wall/internal/timeutil"
	"photo-wall/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

const (
	AppName    = "Photo Wall"
	AppID      = "com.photowall.planner"
	AppVersion = "1.0.0"
)

// Application wires the wall, its services and the window together
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller   *controllers.WallController
	view         *views.MainView
	imageService *services.ImageService
	shutdown     *shutdown.Manager
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "photo-wall [IMAGE_DIR]",
		Short:        "Arrange photographs on a virtual wall",
		Version:      AppVersion,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}

			application, err := NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("application initialization failed: %w", err)
			}

			var initialDir string
			if len(args) > 0 {
				initialDir = args[0]
			}
			application.Run(initialDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (yaml, toml or json); defaults to "+config.DefaultDir())
	return cmd
}

// NewApplication builds every component from cfg
func NewApplication(cfg *config.Config) (*Application, error) {
	appLogger := logger.New(os.Stdout, cfg.Level(), cfg.JSONLogs)

	imageOptions := services.DefaultImageOptions()
	imageOptions.PixelsPerUnit = cfg.Frame.PixelsPerUnit
	imageOptions.BorderWidth = cfg.Frame.BorderWidth
	imageOptions.CacheSize = cfg.CacheSize

	imageService, err := services.NewImageService(imageOptions, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create image service: %w", err)
	}

	wall := models.NewWall(imageService, imageService, models.WallConfig{
		Layout:      cfg.LayoutOptions(),
		DefaultSize: cfg.DefaultSize(),
		Clock:       timeutil.RealClock{},
		Logger:      appLogger,
	})

	controller := controllers.NewWallController(wall, appLogger, controllers.WallOptions{
		StatePath:      cfg.StateFile,
		DebounceWindow: cfg.DeleteDebounce,
	})

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.SetFullScreen(cfg.Window.FullScreen)
	window.CenterOnScreen()

	view := views.NewMainView(window, appLogger)
	view.Bind(controller)

	manager := shutdown.NewManager(appLogger)
	manager.Register("image service", imageService)

	application := &Application{
		fyneApp:      fyneApp,
		window:       window,
		logger:       appLogger,
		config:       cfg,
		controller:   controller,
		view:         view,
		imageService: imageService,
		shutdown:     manager,
	}
	application.setupWindowEvents()

	appLogger.Info("Application", "initialized", map[string]interface{}{
		"version":     AppVersion,
		"config_file": cfg.File,
		"state_file":  cfg.StateFile,
		"log_level":   cfg.Level().String(),
		"go_version":  runtime.Version(),
	})

	return application, nil
}

// Run shows the window, optionally loads initialDir and blocks until exit
func (a *Application) Run(initialDir string) {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.Show()
	if initialDir != "" {
		a.fyneApp.Lifecycle().SetOnStarted(func() {
			a.view.LoadDirectory(initialDir)
		})
	}

	a.fyneApp.Run()
	a.shutdown.Shutdown()
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.view.ShowConfirm("Exit", "Close the wall? Unsaved changes are lost.", func(confirmed bool) {
			if confirmed {
				a.window.Close()
			}
		})
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
	})
}
