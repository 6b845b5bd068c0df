package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/day"
	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newPlanCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "plan [date]",
		Short: "Show the study plan for a day (or several)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			today := a.svc.Today()
			start := today
			if len(args) == 1 {
				if start, err = dateArg(args[0], today); err != nil {
					return err
				}
			}
			end := day.Add(start, days-1)

			out := cmd.OutOrStdout()
			for i, tasks := range a.svc.GenerateRange(start, end) {
				date := day.Add(start, i)
				if i > 0 {
					fmt.Fprintln(out, "")
				}
				printDay(out, date, tasks)

				var due []engine.Review
				if date.Equal(today) {
					due = a.reviews.DueReviews(date)
				} else {
					due = a.reviews.ReviewsOnDate(date)
				}
				printReviews(out, due)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 1, "Number of days to show")
	return cmd
}

func printDay(out io.Writer, date time.Time, tasks []engine.Task) {
	total := 0
	for _, t := range tasks {
		total += t.DurationMinutes
	}
	fmt.Fprintln(out, ui.Heading(ui.IconPlan, fmt.Sprintf("%s %s", day.Format(date), date.Weekday())),
		ui.Muted.Render(fmt.Sprintf("(%d min)", total)))
	if len(tasks) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("  (free day)"))
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(out, "  %s %s %s %s %-14s %s  %s\n",
			ui.Key.Render(fmt.Sprintf("[%d]", t.PlanIndex)),
			ui.Check(t.Done),
			ui.PriorityBadge(t.Priority),
			ui.Swatch(t.Color),
			t.Title,
			ui.Gold.Render(fmt.Sprintf("%2dm", t.DurationMinutes)),
			ui.Muted.Render(t.Goal))
	}
}

func printReviews(out io.Writer, due []engine.Review) {
	if len(due) == 0 {
		return
	}
	fmt.Fprintln(out, ui.H2.Render(ui.IconReview+" Reviews"))
	for _, r := range due {
		fmt.Fprintf(out, "  %s %s %s\n", ui.Muted.Render(r.ID), r.SubjectID, r.Topic)
	}
}
