package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/matrix-rain/internal/config"
	"github.com/ensigniasec/matrix-rain/internal/driver"
	"github.com/ensigniasec/matrix-rain/internal/rain"
	"github.com/ensigniasec/matrix-rain/internal/surface"
	"github.com/ensigniasec/matrix-rain/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile string
	verbose    bool
	seconds    int
	fps        int
	backend    string
	seed       uint64

	rootCmd = &cobra.Command{
		Use:   "matrix-rain",
		Short: "Matrix-style terminal rain with an emergent ring pattern.",
		Long:  `Renders falling streams of binary digits across the whole terminal. Cells on a ring around the center of the screen light up more often, so a circle emerges from the rain. Press Ctrl-C to stop.`,
		Args:  cobra.NoArgs,
		RunE:  runRain,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr; stdout belongs to the terminal surface.
	logrus.SetOutput(os.Stderr)

	bindFlags(rootCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

// bindFlags registers the run flags on cmd, bound to the package-level vars.
func bindFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().IntVar(&seconds, "seconds", defaults.Seconds, "Run duration in seconds (0 = run until interrupted)")
	cmd.Flags().IntVar(&fps, "fps", defaults.FPS, "Frames per second")
	cmd.Flags().StringVar(&backend, "backend", defaults.Backend, "Terminal backend: tcell or tea")
	cmd.Flags().Uint64Var(&seed, "seed", defaults.Seed, "Random seed for a reproducible run (0 = random)")
	cmd.Flags().StringVar(&configFile, "config", "", "Optional: YAML file with defaults for the flags above")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.Fatal(err)
	}
}

// resolveConfig merges the config file with flags set on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("seconds") {
		cfg.Seconds = seconds
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

func openSurface(name string) (surface.Surface, error) {
	switch name {
	case config.BackendTea:
		s, err := tui.Open()
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendTcell:
		s, err := surface.OpenTcell()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func runRain(cmd *cobra.Command, _ []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// From here on errors are runtime failures, not usage mistakes.
	cmd.SilenceUsage = true

	logrus.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"fps":     cfg.FPS,
		"seconds": cfg.Seconds,
		"delay":   cfg.FrameDelay(),
	}).Debug("starting animation")

	s, err := openSurface(cfg.Backend)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer s.Close()

	// Silence logs while the surface owns the screen to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	d := driver.New(s, cfg.Seconds, cfg.FPS, driver.WithRand(rain.NewRand(cfg.Seed)))
	stats, err := d.Run(cmd.Context())
	logrus.SetOutput(prevOut)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"session": d.Session().ID.String(),
		"frames":  stats.Frames,
		"resizes": stats.Resizes,
	}).Debug("animation finished")
	return nil
}

func main() {
	Execute()
}
