package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpiekarski/quizdeck/internal/interchange"
	"github.com/mpiekarski/quizdeck/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import quiz set definitions from JSON",
	Long:  "Reads set definitions from files or stdin. Importing over an existing set keeps its stored progress.",
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

		repo := st.Sets()

		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return importOne(cmd, repo, "stdin", data)
		}

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := importOne(cmd, repo, path, data); err != nil {
				return err
			}
		}
		return nil
	},
}

func importOne(cmd *cobra.Command, repo store.SetRepo, source string, data []byte) error {
	set, err := interchange.Import(data)
	if err != nil {
		return fmt.Errorf("%s: invalid set document: %w", source, err)
	}
	if err := repo.ImportDefinition(cmd.Context(), set); err != nil {
		return err
	}
	fmt.Printf("Imported %q (%d questions) as %s\n", set.Name, len(set.Questions), set.ID)
	return nil
}
