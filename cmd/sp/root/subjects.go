package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

func newSubjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List subjects with weights and level factors",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Subjects"))
			subjects := a.svc.Subjects()
			if len(subjects) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			for _, s := range subjects {
				fmt.Fprintf(out, "%s %-5s %-20s %s %s\n",
					ui.Swatch(s.Color), s.ID, s.Name,
					ui.LabelValue("weight", fmt.Sprintf("%.2f", s.Weight)),
					ui.LabelValue("level", fmt.Sprintf("%s (x%.2f)", a.svc.Level(s.ID), a.svc.LevelFactor(s.ID))))
			}
			return nil
		},
	}
}
