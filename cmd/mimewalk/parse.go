package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailchannels/mimewalk"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "parse a raw RFC 5322 message and print its structure as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		log.WithField("bytes", len(data)).Debug("parsing message")

		msg := mimewalk.Parse(data)
		if msg == nil {
			return fmt.Errorf("%s: no headers found, nothing to parse", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(msg)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
