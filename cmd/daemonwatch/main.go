package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "daemonwatch",
		Short: "Run and monitor the background daemons",
	}
	root.AddCommand(newServeCmd(log), newStatusCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
