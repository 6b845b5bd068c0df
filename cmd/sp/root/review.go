package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studyplan/internal/day"
	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Spaced-repetition reviews (SM-2)",
	}
	cmd.AddCommand(
		newReviewAddCmd(),
		newReviewGradeCmd(),
		newReviewRmCmd(),
		newReviewDueCmd(),
		newReviewListCmd(),
	)
	return cmd
}

func newReviewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <subject> <topic...>",
		Short: "Schedule a topic for review",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("subject and topic are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := a.reviews.AddReview(args[0], strings.Join(args[1:], " "))
			if id == "" {
				return errors.New("subject and topic must not be empty")
			}
			r, _ := a.reviews.Review(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), id,
				ui.Muted.Render("(next "+day.Format(r.NextReviewDate)+")"))
			return nil
		},
	}
}

func newReviewGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <id> <quality>",
		Short: "Record a recall grade (0-5 or blackout|wrong|familiar|hard|good|perfect)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and quality are required")
			}
			_, err := engine.ParseQuality(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, _ := engine.ParseQuality(args[1])
			if !a.reviews.RecordReview(args[0], q) {
				return fmt.Errorf("review %q not found", args[0])
			}
			r, _ := a.reviews.Review(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconReview+" Graded"), r.Topic,
				ui.Muted.Render(fmt.Sprintf("(q=%d, next %s, every %dd, ef %.2f)", q, day.Format(r.NextReviewDate), r.IntervalDays, r.EaseFactor)))
			return nil
		},
	}
}

func newReviewRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a review item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !a.reviews.RemoveReview(args[0]) {
				return fmt.Errorf("review %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Removed"), args[0])
			return nil
		},
	}
}

func newReviewDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due [date]",
		Short: "List reviews due on or before a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			asOf := a.svc.Today()
			if len(args) == 1 {
				if asOf, err = dateArg(args[0], asOf); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconReview, "Due by "+day.Format(asOf)))
			printReviewTable(cmd.OutOrStdout(), a.reviews.DueReviews(asOf))
			return nil
		},
	}
}

func newReviewListCmd() *cobra.Command {
	var subject string
	var on string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List review items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var list []engine.Review
			switch {
			case on != "":
				date, err := dateArg(on, a.svc.Today())
				if err != nil {
					return err
				}
				list = a.reviews.ReviewsOnDate(date)
			case subject != "":
				list = a.reviews.ReviewsForSubject(subject)
			default:
				list = a.reviews.Reviews()
			}
			if on != "" && subject != "" {
				list = filterSubject(list, subject)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Reviews"))
			printReviewTable(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Only this subject id")
	cmd.Flags().StringVar(&on, "on", "", "Only reviews scheduled on this date")
	return cmd
}

func filterSubject(list []engine.Review, subject string) []engine.Review {
	var out []engine.Review
	for _, r := range list {
		if r.SubjectID == subject {
			out = append(out, r)
		}
	}
	return out
}

func printReviewTable(out io.Writer, list []engine.Review) {
	if len(list) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("(none)"))
		return
	}
	for _, r := range list {
		fmt.Fprintf(out, "- %s %s %s %s\n",
			day.Format(r.NextReviewDate),
			ui.Key.Render(r.ID),
			r.Topic,
			ui.Muted.Render(fmt.Sprintf("(rep %d, every %dd, ef %.2f)", r.RepetitionNumber, r.IntervalDays, r.EaseFactor)))
	}
}
