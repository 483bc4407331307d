package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"photo-wall/internal/logger"
	"photo-wall/internal/services"
	"photo-wall/internal/shutdown"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type serviceFactory func() (*services.BatchService, *shutdown.Manager)

func newRootCommand() *cobra.Command {
	var (
		logLevel string
		jsonLogs bool
	)

	root := &cobra.Command{
		Use:          "wall-batch",
		Short:        "Batch image helpers for preparing wall prints",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&jsonLogs, "json", false, "emit JSON logs")

	// the manager's context is cancelled on SIGINT/SIGTERM so a run stops between files
	newService := func() (*services.BatchService, *shutdown.Manager) {
		log := logger.New(os.Stderr, logger.ParseLevel(logLevel), jsonLogs)
		manager := shutdown.NewManager(log)
		manager.Listen(nil)
		return services.NewBatchService(log), manager
	}

	root.AddCommand(newResizeCommand(newService), newMergeCommand(newService))
	return root
}

func newResizeCommand(newService serviceFactory) *cobra.Command {
	var (
		outDir string
		scale  float64
	)

	cmd := &cobra.Command{
		Use:     "resize PATTERN",
		Short:   "Downscale every image matching PATTERN",
		Example: `  wall-batch resize "photos/*.jpg" --out resized --scale 0.25`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, manager := newService()
			defer manager.Shutdown()

			result, err := service.ResizeDirectory(manager.Context(), args[0], outDir, scale)
			for _, path := range result.Written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "resized", "output directory")
	cmd.Flags().Float64VarP(&scale, "scale", "s", 0.25, "scale factor applied to both axes")
	return cmd
}

func newMergeCommand(newService serviceFactory) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "merge IMAGE...",
		Short: "Stack image i on top of image i+n/2 and write merged<i>.jpg",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, manager := newService()
			defer manager.Shutdown()

			result, err := service.MergePairs(manager.Context(), expand(args), outDir)
			for _, path := range result.Written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

// expand resolves glob arguments the shell left untouched, keeping order
func expand(args []string) []string {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
