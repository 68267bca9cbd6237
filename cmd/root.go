// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-stats",
	Short: "A CLI tool to estimate a GitHub account's lines of code and fetch topic images.",
	Long: `portfolio-stats estimates the total lines of code across a GitHub user's
repositories from size metadata, and looks up a representative Unsplash photo
for each portfolio topic.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger builds the logger shared by gateways and use cases. Warnings and
// errors go to stderr by default; --verbose enables debug output and
// LOG_LEVEL overrides both.
func newLogger(cmd *cobra.Command, out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	logger.SetLevel(logrus.WarnLevel)
	if verbose, _ := cmd.InheritedFlags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(parsed)
		} else {
			logger.WithField("level", level).Warn("Ignoring invalid LOG_LEVEL")
		}
	}
	return logger
}
