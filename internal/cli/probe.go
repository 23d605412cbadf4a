package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/newscatcher/internal/control"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run a single health probe against the backend",
	Run:   runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	app, err := control.NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize client", "error", err)
		os.Exit(1)
	}

	monitor := app.Monitor()
	reachable := monitor.Probe(cmd.Context())
	result, _ := monitor.LastProbe()
	_ = app.Stop(context.Background())

	if reachable {
		fmt.Printf("%s%s reachable (%s)\n", cfg.API.BaseURL, monitor.HealthPath(), result.Latency)
		return
	}
	fmt.Printf("%s%s unreachable: %s\n", cfg.API.BaseURL, monitor.HealthPath(), result.Error)
	os.Exit(2)
}
