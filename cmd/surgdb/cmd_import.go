// Package main implements the bulk import command for surgdb.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdsykes2512/surg-db-sub000/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-import a batch of episodes from a YAML or JSON file",
	Long: `Import a site submission file. Each entry is an episode with nested
tumours and treatments. Entries whose staging codes do not normalize under
their AJCC edition are rejected individually and reported; valid entries
are still imported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	im := importer.New(st, cfg.DefaultEdition(), logger)
	res, err := im.ImportFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d episodes, %d tumours, %d treatments\n",
		res.Episodes, res.Tumours, res.Treatments)
	if len(res.Rejected) > 0 {
		fmt.Printf("Rejected %d entries:\n", len(res.Rejected))
		for _, r := range res.Rejected {
			fmt.Printf("  #%d %s: %s\n", r.Index, r.PatientRef, r.Reason)
		}
	}
	return nil
}
