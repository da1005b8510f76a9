package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/tokenscope/internal/config"
	"github.com/rshade/tokenscope/internal/logging"
)

// logToTerminal is set when logs go to stderr. The interactive page discards
// them while the alternate screen is up.
var logToTerminal bool //nolint:gochecknoglobals // Set alongside logger

// setupLogging configures logging from the config file, environment and CLI
// flags. Without a configured file, logs go to the default log file so they
// never mix with page output. --debug raises the level and prints the path.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetGlobalConfig().Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
	}

	if loggingCfg.File == "" {
		if path, err := config.DefaultLogPath(); err == nil {
			loggingCfg.File = path
		}
	}

	// Ensure log directory exists after all overrides have been applied.
	if err := config.EnsureLogDir(loggingCfg.File); err != nil {
		cmd.PrintErrf("Warning: could not create log directory: %v\n", err)
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")
	logToTerminal = !result.UsingFile

	if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
