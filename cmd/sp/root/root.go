package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

const Version = "0.1.0"

var dataDir string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sp",
		Short:         "studyplan: local-first daily study planner",
		Long:          "studyplan builds a daily study plan from your subjects, exams and capacity, and schedules topic reviews with SM-2.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (env "+envDataDir+", default ~/.local/share/studyplan)")

	cmd.AddCommand(
		newPlanCmd(),
		newDoneCmd(),
		newExamCmd(),
		newReviewCmd(),
		newEventCmd(),
		newSubjectsCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
