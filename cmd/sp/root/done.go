package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/day"
	"studyplan/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <date> <index>",
		Short: "Mark a plan slot done (or open again with --undo)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("date and index are required")
			}
			_, err := indexArg(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := dateArg(args[0], a.svc.Today())
			if err != nil {
				return err
			}
			idx, _ := indexArg(args[1])
			if !a.svc.SetDone(date, idx, !undo) {
				return fmt.Errorf("cannot mark %s [%d]", day.Format(date), idx)
			}

			name := fmt.Sprintf("%s [%d]", day.Format(date), idx)
			if tasks := a.svc.GenerateDay(date); idx < len(tasks) {
				name += " " + tasks[idx].Title
			}
			if undo {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconOpen+" Reopened"), name)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Done"), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Clear the done flag")
	return cmd
}
