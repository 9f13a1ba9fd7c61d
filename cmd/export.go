package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpiekarski/quizdeck/internal/interchange"
	"github.com/mpiekarski/quizdeck/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <set>",
	Short: "Export a quiz set definition as JSON",
	Long:  "Writes the set's definition (name, questions, answers) to stdout or --out. Sets are addressed by id, id prefix, or name. Progress is not exported.",
	Args:  cobra.ExactArgs(1),
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

		set, err := findSet(cmd.Context(), st.Sets(), args[0])
		if err != nil {
			return err
		}

		data, err := interchange.Export(set)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			fmt.Println(string(data))
			return nil
		}
		return os.WriteFile(out, data, 0o644)
	},
}

func init() {
	exportCmd.Flags().String("out", "", "Write to a file instead of stdout")
}
