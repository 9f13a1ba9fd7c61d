package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset <set>",
	Short: "Clear stored progress for a quiz set",
	Long:  "Clears the progress and completed flag of one set (by id, id prefix, or name), or of every set with --all.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			return fmt.Errorf("pass either a set reference or --all")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.Sets()
		ctx := cmd.Context()

		var sets []*quiz.Set
		if all {
			sets, err = repo.List(ctx)
			if err != nil {
				return err
			}
		} else {
			set, err := findSet(ctx, repo, args[0])
			if err != nil {
				return err
			}
			sets = []*quiz.Set{set}
		}

		for _, set := range sets {
			set.Progress = map[string]quiz.Selection{}
			set.Completed = false
			if err := repo.Save(ctx, set); err != nil {
				return err
			}
			fmt.Printf("Progress cleared for %q\n", set.Name)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset every stored set")
}
