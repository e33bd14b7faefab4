package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fleet-backend/internal/approvals"
	"fleet-backend/internal/bootstrap"
	"fleet-backend/internal/shared/config"
)

var jobsFilter string

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect service jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs with their review state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := approvals.ParseFilter(jobsFilter)
		if err != nil {
			return err
		}
		app, err := bootstrap.Build(cmd.Context(), config.Load())
		if err != nil {
			return err
		}
		defer app.Close()

		jobs, err := app.JobsService.List(cmd.Context(), filter)
		if err != nil {
			return err
		}
		printJobs(cmd.OutOrStdout(), jobs)
		return nil
	},
}

func printJobs(w io.Writer, jobs []approvals.JobView) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tDATE\tVEHICLE\tSTATE\tPENDING")
	for _, job := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			job.ID, job.Date, job.VehicleDisplay(), stateLabel(job.ReviewState), job.PendingCount)
	}
	tw.Flush()
}

func stateLabel(state approvals.ReviewState) string {
	switch state {
	case approvals.ReviewReviewed:
		return color.GreenString(string(state))
	case approvals.ReviewPartiallyReviewed:
		return color.YellowString(string(state))
	default:
		return color.RedString(string(state))
	}
}

func init() {
	jobsListCmd.Flags().StringVar(&jobsFilter, "filter", string(approvals.FilterNeedsReview), "all or needs_review")
	jobsCmd.AddCommand(jobsListCmd)
	rootCmd.AddCommand(jobsCmd)
}
