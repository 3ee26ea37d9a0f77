package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/krau/download-manager/client/cli"
	"github.com/krau/download-manager/cmd/download"
	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/common/i18n"
	"github.com/krau/download-manager/common/i18n/i18nk"
	"github.com/krau/download-manager/config"
	"github.com/krau/download-manager/core"
	"github.com/krau/download-manager/core/engine/ytdlp"
	"github.com/krau/download-manager/pkg/platform"
)

// Run is one interactive session: configure, collect URLs, then download and index them.
func Run(cmd *cobra.Command, _ []string) error {
	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := config.Init(ctx, config.GetConfigFile(cmd)); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.C()
	i18n.Init(cfg.Lang)
	logger := newLogger(cfg.Log.Level)
	ctx = log.WithContext(ctx, logger)

	con := console.Std()
	con.Banner(i18n.T(i18nk.Welcome))
	con.Info(i18n.T(i18nk.ReadReadme))
	con.Info(i18n.T(i18nk.ImportConfig))
	settings, err := cfg.Settings()
	if err != nil {
		con.Error(i18n.T(i18nk.ConfigInvalid, map[string]any{"Error": err}))
		return err
	}
	con.Success(i18n.T(i18nk.ConfigLoaded))
	con.Blank()

	ws, err := cli.Setup(ctx, con, settings)
	if err != nil {
		return err
	}
	con.Success(i18n.T(i18nk.SetupComplete))
	con.Blank()

	collector := cli.NewCollector(con, platform.Default())
	collector.PrintPlatforms()
	batch, err := collector.Collect(ctx)
	if err != nil {
		return err
	}

	if settings.AutoInstall {
		con.Info(i18n.T(i18nk.InstallEngine))
		if err := ytdlp.Install(ctx); err != nil {
			con.Error(i18n.T(i18nk.EngineFailed, map[string]any{"Error": err}))
			return err
		}
	}

	interactive := !noProgress && term.IsTerminal(int(os.Stdout.Fd()))
	reporter := download.NewReporter(con)
	runner := &core.Runner{
		Engine:   ytdlp.New(ytdlp.NewOptions(settings, ws.SaveDir)),
		Tracker:  download.NewTracker(con, interactive),
		Reporter: reporter,
	}
	if ws.Index != nil {
		runner.Indexer = ws.Index
		defer func() {
			if err := ws.Index.Close(); err != nil {
				logger.Error("Failed to close index file", "error", err)
			}
		}()
	}

	con.Banner(i18n.T(i18nk.DownloadStarting))
	report := runner.Run(ctx, batch)
	reporter.Summary(report)
	if report.Interrupted {
		return ctx.Err()
	}
	return nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "download-manager",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
