package root

import (
	"context"

	"github.com/spf13/cobra"

	"studyplan/internal/tui"
)

func newBoardCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive plan board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.svc, a.reviews, cmd.OutOrStdout(), tui.BoardOptions{Watch: watch, Log: a.log})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload when data files change on disk")
	return cmd
}
