package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd is the sphere binary; it does nothing without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sphere",
	Short: "SynergySphere team task board backend",
	Long: `SynergySphere serves team task boards over HTTP and WebSocket.

Available subcommands:
  serve   - Run the API server
  fixture - Print a generated demo board as JSON`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(os.Getenv("SPHERE_LOG_LEVEL"), os.Getenv("SPHERE_LOG_FORMAT"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fixtureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("sphere failed")
	}
}

// setupLogging configures the global zerolog logger. Unknown levels fall
// back to info; format "text" switches to the human-readable console writer.
func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
