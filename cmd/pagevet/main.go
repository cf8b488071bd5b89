// Command pagevet inspects a single web page: it loads the page, evaluates
// the rule catalog against it, verifies every link it carries, and renders
// the report on stdout. Broken links and failed checks go into the report,
// not the exit code; the process exits non-zero only when the inspection
// itself could not run.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/config"
	"github.com/pagevet/pagevet/internal/logger"
	"github.com/pagevet/pagevet/internal/reporter"
	"github.com/pagevet/pagevet/internal/scanner"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config: %v", err)
	}
	applyFlagOverrides(gCfg, flags)

	// The logger comes up before validation so violations are reported
	// through it; an invalid log level falls back to info.
	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	if err := run(gCfg, zLogger, flags.TargetURL); err != nil {
		zLogger.Fatal().Err(err).Msg("Inspection failed")
	}
}

// applyFlagOverrides maps command line flags onto the loaded configuration.
// Flags win over config file values.
func applyFlagOverrides(gCfg *config.GlobalConfig, flags AppFlags) {
	if flags.LogLevel != "" {
		gCfg.LogConfig.LogLevel = flags.LogLevel
	}
	if flags.JSONOutput {
		gCfg.ReporterConfig.Format = "json"
	}
	if flags.OutputFile != "" {
		gCfg.ReporterConfig.OutputFile = flags.OutputFile
	}
	if flags.IncludeScripts {
		gCfg.ExtractorConfig.EnableScriptAnalysis = true
		gCfg.FetcherConfig.IncludeInlineScripts = true
	}
	if flags.NoProbe {
		gCfg.ProbeConfig.Enabled = false
	}
	if flags.NoBrowser {
		gCfg.BrowserConfig.Enabled = false
	}
}

func run(gCfg *config.GlobalConfig, zLogger zerolog.Logger, targetURL string) error {
	s, err := scanner.NewScanner(gCfg, zLogger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, winding down")
		cancel()
	}()

	// Resource exhaustion cancels the scan context the same way an
	// interrupt does; in-flight link batches stamp out and the run ends
	// with a partial report.
	if err := s.Start(cancel); err != nil {
		return err
	}
	defer s.Close()

	report, err := s.Scan(ctx, targetURL)
	if err != nil {
		return err
	}

	rep := reporter.New(scanner.NewConfigBuilder(gCfg).BuildReporterConfig(), zLogger)
	return rep.Report(report)
}
