package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/day"
	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newExamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Manage upcoming exams",
	}
	cmd.AddCommand(newExamAddCmd(), newExamRmCmd(), newExamListCmd())
	return cmd
}

func newExamAddCmd() *cobra.Command {
	var id string
	var topics []string
	var boost float64

	cmd := &cobra.Command{
		Use:   "add <subject> <date>",
		Short: "Add or update an exam",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("subject and date are required")
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

			date, err := dateArg(args[1], a.svc.Today())
			if err != nil {
				return err
			}
			subject := args[0]
			if _, ok := a.svc.Subject(subject); !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" unknown subject "+subject+", the exam will not boost any plan"))
			}
			e := engine.Exam{ID: id, SubjectID: subject, Date: date, Topics: topics, WeightBoost: boost}
			if !a.svc.AddOrUpdateExam(e) {
				return errors.New("exam needs a subject and a valid date")
			}
			if id == "" {
				id = subject + "_" + day.Format(date)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconExam+" Saved"), id, ui.DaysLeft(day.DaysTo(a.svc.Today(), date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Exam id (default subject_date)")
	cmd.Flags().StringSliceVarP(&topics, "topic", "t", nil, "Exam topic (repeatable)")
	cmd.Flags().Float64Var(&boost, "boost", engine.DefaultExamBoost, "Weight boost")
	return cmd
}

func newExamRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an exam",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			if !a.svc.RemoveExam(args[0]) {
				return fmt.Errorf("exam %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Removed"), args[0])
			return nil
		},
	}
}

func newExamListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming exams",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconExam, "Exams"))
			if all {
				exams := a.svc.Exams()
				if len(exams) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(none)"))
				}
				for _, e := range exams {
					fmt.Fprintf(out, "- %s %s %s %s\n", day.Format(e.Date), e.SubjectID, ui.Muted.Render(e.ID), topicList(e.Topics))
				}
				return nil
			}

			upcoming := a.svc.UpcomingExams(a.svc.Today())
			if len(upcoming) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none upcoming)"))
			}
			for _, v := range upcoming {
				fmt.Fprintf(out, "- %s %s %s %s %s %s\n",
					ui.PriorityBadge(v.Priority), day.Format(v.Date), v.SubjectName,
					ui.DaysLeft(v.DaysLeft), ui.Muted.Render(v.ID), topicList(v.Topics))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include past exams")
	return cmd
}

func topicList(topics []string) string {
	if len(topics) == 0 {
		return ""
	}
	return ui.Muted.Render(fmt.Sprintf("%v", topics))
}
