package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"daemonwatch/internal/display"
	"daemonwatch/internal/models"
	"daemonwatch/internal/timeutil"
)

func newStatusCmd() *cobra.Command {
	var (
		addr   string
		tzName string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Render the daemon health table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(addr, tzName)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "http://localhost:8080", "base URL of a running daemonwatch server")
	cmd.Flags().StringVar(&tzName, "tz", "", "IANA timezone for heartbeat times (default: detected local zone)")
	return cmd
}

func runStatus(addr, tzName string) error {
	loc := timeutil.DetectZone()
	if tzName != "" {
		parsed, err := time.LoadLocation(tzName)
		if err != nil {
			return fmt.Errorf("load timezone %q: %w", tzName, err)
		}
		loc = parsed
	}

	snap, err := fetchSnapshot(addr)
	if err != nil {
		return err
	}
	return display.Render(os.Stdout, snap, time.Now(), loc)
}

func fetchSnapshot(addr string) (*models.Snapshot, error) {
	resp, err := http.Get(addr + "/api/daemons")
	if err != nil {
		return nil, fmt.Errorf("fetch daemon snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch daemon snapshot: unexpected status %s", resp.Status)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode daemon snapshot: %w", err)
	}
	return &snap, nil
}
