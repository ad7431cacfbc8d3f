package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/client"
	"recruiter-pipeline-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	apiURL   string
	apiToken string
	interval time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Command-line client for the recruiter pipeline API",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", envOr("PIPELINE_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("PIPELINE_TOKEN"), "bearer token")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Poll the dashboard and print the funnel summary",
		RunE:  runWatch,
	}
	watch.Flags().DurationVar(&interval, "interval", 0, "poll interval (default: server's advertised refresh interval)")

	move := &cobra.Command{
		Use:   "move <application-id> <status>",
		Short: "Move an application to another stage",
		Args:  cobra.ExactArgs(2),
		RunE:  runMove,
	}

	root.AddCommand(watch, move)
	return root
}

func newClient() *client.HTTPClient {
	return client.NewClient(apiURL, apiToken, &http.Client{Timeout: 15 * time.Second})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := newClient()

	every := interval
	if every <= 0 {
		first, err := api.Dashboard(ctx)
		if err != nil {
			return err
		}
		every = time.Duration(first.RefreshIntervalSeconds) * time.Second
		if every <= 0 {
			every = 30 * time.Second
		}
	}

	poller := client.NewPoller(every, time.Second, func(ctx context.Context) error {
		d, err := api.Dashboard(ctx)
		if err != nil {
			return err
		}
		printSummary(cmd, d)
		return nil
	})
	poller.OnError(func(err error) {
		logger.Log.Warn("dashboard poll failed", "error", err)
	})

	err := poller.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printSummary(cmd *cobra.Command, d *domain.DashboardPayload) {
	s := d.Summary
	r := d.ConversionRates
	fmt.Fprintf(cmd.OutOrStdout(), "%s  total=%d active=%d placed=%d rejection=%s%%  applied>interview=%s%% interview>offer=%s%%\n",
		d.GeneratedAt.Local().Format(time.Kitchen),
		s.TotalCandidates, s.ActiveApplications, s.SuccessfulPlacements, s.RejectionRate,
		r.AppliedToInterview, r.InterviewToOffer)
}

func runMove(cmd *cobra.Command, args []string) error {
	id, status := args[0], domain.Status(args[1])
	if !status.Valid() {
		return fmt.Errorf("status must be one of: applied, interview, offer, rejected")
	}

	board := client.NewBoard(newClient())
	if err := board.Load(cmd.Context()); err != nil {
		return err
	}
	if err := board.Move(cmd.Context(), id, status); err != nil {
		return err
	}

	for _, s := range domain.AllStatuses {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", s.Label(), len(board.Columns()[s]))
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
