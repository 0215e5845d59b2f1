package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "mimewalk",
	Short: "walk a MIME message and print its structure",
	Long: `mimewalk is a zero-copy, best-effort RFC 5322/MIME message parser.
It descends multipart and nested message/rfc822 structure, classifies each
leaf as an HTML body, a text body, an inline part, or an attachment, and
synthesizes whichever body flavor a multipart/alternative block left out.`,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print out more debug information")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
	}
}

// Execute runs the root command, exiting the process with status 1 on
// error (cobra already prints the error before returning it here).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
