package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Dated events and reminders (stored in SQLite)",
	}
	cmd.AddCommand(newEventAddCmd(), newEventListCmd(), newEventDoneCmd(), newEventRmCmd())
	return cmd
}

func newEventAddCmd() *cobra.Command {
	var in engine.AddEventInput
	var start, end, due string

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add an event",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
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

			in.Title = strings.Join(args, " ")
			if start != "" {
				if in.Start, err = parseWhen(start); err != nil {
					return err
				}
			}
			if in.End, err = optionalWhen(end); err != nil {
				return err
			}
			if in.Due, err = optionalWhen(due); err != nil {
				return err
			}

			e, err := a.svc.AddEvent(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconEvent+" Added"), e.Title, ui.Muted.Render(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start (YYYY-MM-DD[ HH:MM], default now)")
	cmd.Flags().StringVar(&end, "end", "", "End (YYYY-MM-DD[ HH:MM])")
	cmd.Flags().StringVar(&due, "due", "", "Due (YYYY-MM-DD[ HH:MM])")
	cmd.Flags().BoolVar(&in.AllDay, "all-day", false, "All-day event")
	cmd.Flags().BoolVar(&in.IsExam, "exam", false, "Mark as exam reminder")
	cmd.Flags().StringSliceVar(&in.Tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&in.Location, "location", "", "Location")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&in.SubjectID, "subject", "", "Subject id (sets the color)")
	return cmd
}

func newEventListCmd() *cobra.Command {
	var onlyOpen bool
	var search, from, to, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var want *engine.Priority
			if priority != "" {
				p, err := engine.ParsePriority(priority)
				if err != nil {
					return err
				}
				want = &p
			}

			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var events []engine.Event
			switch {
			case search != "":
				events, err = a.svc.SearchEvents(ctx, search, onlyOpen)
			case from != "" || to != "":
				if from == "" {
					from = to
				}
				if to == "" {
					to = from
				}
				today := a.svc.Today()
				f, ferr := dateArg(from, today)
				if ferr != nil {
					return ferr
				}
				t, terr := dateArg(to, today)
				if terr != nil {
					return terr
				}
				events, err = a.svc.EventsBetween(ctx, f, t, onlyOpen)
			default:
				events, err = a.svc.Events(ctx, onlyOpen)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconEvent, "Events"))
			printEvents(cmd.OutOrStdout(), filterPriority(events, want))
			return nil
		},
	}

	cmd.Flags().BoolVar(&onlyOpen, "open", false, "Only events not done")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match title, location or tags")
	cmd.Flags().StringVar(&from, "from", "", "First start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last start date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Only this priority (low|medium|high)")
	return cmd
}

func filterPriority(events []engine.Event, want *engine.Priority) []engine.Event {
	if want == nil {
		return events
	}
	var out []engine.Event
	for _, e := range events {
		if e.Priority == *want {
			out = append(out, e)
		}
	}
	return out
}

func printEvents(out io.Writer, events []engine.Event) {
	if len(events) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("(none)"))
		return
	}
	for _, e := range events {
		when := e.Start.Local().Format("2006-01-02 15:04")
		if e.AllDay {
			when = e.Start.Local().Format("2006-01-02")
		}
		line := fmt.Sprintf("%s %s %s %s", ui.Check(e.Done), ui.PriorityBadge(e.Priority), when, e.Title)
		if e.IsExam {
			line += " " + ui.IconExam
		}
		if e.Due != nil {
			line += " " + ui.Warn.Render("due "+e.Due.Local().Format("2006-01-02 15:04"))
		}
		if e.Location != "" {
			line += " @" + e.Location
		}
		if len(e.Tags) > 0 {
			line += " " + ui.Muted.Render("#"+strings.Join(e.Tags, " #"))
		}
		fmt.Fprintf(out, "- %s %s\n", line, ui.Muted.Render(e.ID))
	}
}

func newEventDoneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an event done (or open again with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			found, err := a.svc.SetEventDone(ctx, args[0], !undo)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("event %q not found", args[0])
			}
			if undo {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconOpen+" Reopened"), args[0])
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Done"), args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark open again")
	return cmd
}

func newEventRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			found, err := a.svc.RemoveEvent(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("event %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Removed"), args[0])
			return nil
		},
	}
}
