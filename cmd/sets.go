package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/store"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List stored quiz sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		sets, err := st.Sets().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(sets) == 0 {
			fmt.Println("No quiz sets stored.")
			return nil
		}

		for _, set := range sets {
			status := fmt.Sprintf("%d/%d answered", set.AnsweredCount(), len(set.Questions))
			if set.Completed {
				sum := quiz.Summarize(set.Questions, set.Progress)
				status = fmt.Sprintf("completed, %d%%", sum.Percentage)
			}
			fmt.Printf("%s  %-30s %s\n", set.ID, set.Name, status)
		}
		return nil
	},
}
