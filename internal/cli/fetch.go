package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/newscatcher/internal/control"
	"github.com/vietddude/newscatcher/internal/core/domain"
	"github.com/vietddude/newscatcher/internal/newsapi"
)

var (
	fetchCategory string
	fetchLimit    int
)

var fetchCmd = &cobra.Command{
	Use:       "fetch [news|sources|logs|events]",
	Short:     "Fetch a collection, falling back to sample data when offline",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"news", "sources", "logs", "events"},
	Run:       runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCategory, "category", "", "filter news or sources by category")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 10, "number of scrape logs to fetch")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	app, err := control.NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize client", "error", err)
		os.Exit(1)
	}

	ctx := cmd.Context()
	svc := app.News()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)

	var offline bool
	switch args[0] {
	case "news":
		var res newsapi.Result[domain.NewsItem]
		res, err = svc.ListNews(ctx, domain.NewsFilter{Category: fetchCategory})
		offline = res.Offline
		printNews(w, res.Items)
	case "sources":
		var res newsapi.Result[domain.DataSource]
		res, err = svc.ListSources(ctx, fetchCategory, false)
		offline = res.Offline
		printSources(w, res.Items)
	case "logs":
		var res newsapi.Result[domain.ScrapeLog]
		res, err = svc.ListScrapeLogs(ctx, fetchLimit)
		offline = res.Offline
		printLogs(w, res.Items)
	case "events":
		var res newsapi.Result[domain.Event]
		res, err = svc.ListEvents(ctx)
		offline = res.Offline
		printEvents(w, res.Items)
	default:
		err = fmt.Errorf("unknown collection %q", args[0])
	}
	_ = app.Stop(context.Background())
	if err != nil {
		slog.Error("Fetch failed", "collection", args[0], "error", err)
		os.Exit(1)
	}
	_ = w.Flush()

	if offline {
		_, _ = fmt.Fprintln(os.Stderr, "backend unreachable: showing sample data")
	}
}

func printNews(w io.Writer, items []domain.NewsItem) {
	_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tLAT\tLNG")
	for _, n := range items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%.4f\n", n.ID, n.Category, n.Title, n.Latitude, n.Longitude)
	}
}

func printSources(w io.Writer, sources []domain.DataSource) {
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tACTIVE\tURL")
	for _, s := range sources {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", s.ID, s.SourceName, s.Category, s.IsActive, s.URL)
	}
}

func printLogs(w io.Writer, logs []domain.ScrapeLog) {
	_, _ = fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tTOTAL\tOK\tERRORS")
	for _, l := range logs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
			l.ID, l.StartTime.Format("2006-01-02 15:04"), l.Status, l.TotalItems, l.SuccessfulItems, l.ErrorItems)
	}
}

func printEvents(w io.Writer, events []domain.Event) {
	_, _ = fmt.Fprintln(w, "ID\tSTARTS\tTITLE\tLOCATION")
	for _, e := range events {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.StartsAt.Format("2006-01-02 15:04"), e.Title, e.Location)
	}
}
