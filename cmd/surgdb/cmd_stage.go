// Package main implements the stage classification command for surgdb.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
)

var stageEdition int

// stageCmd classifies a TNM triple without touching the database.
var stageCmd = &cobra.Command{
	Use:   "stage <T> <N> <M>",
	Short: "Classify TNM codes into an AJCC stage group",
	Long: `Classify a TNM triple into its AJCC anatomic stage group.

Codes are matched case-insensitively and the axis letter is optional:
"T3 N1a M0", "t3 n1a m0", and "3 1a 0" are equivalent. An empty or "x"
code means the axis was not assessed; unassessed T or N yields Unknown
rather than a guessed stage.

Examples:
  surgdb stage T3 N0 M0
  surgdb stage t4a n2a m0
  surgdb stage T2 N1c M0 --edition 8`,
	Args: cobra.ExactArgs(3),
	RunE: runStage,
}

func init() {
	stageCmd.Flags().IntVar(&stageEdition, "edition", 0, "AJCC edition, 7 or 8 (default from config)")
}

func runStage(cmd *cobra.Command, args []string) error {
	ed := cfg.DefaultEdition()
	if stageEdition != 0 {
		ed = staging.Edition(stageEdition)
	}

	res, err := staging.ClassifyCodes(args[0], args[1], args[2], ed)
	if err != nil {
		return err
	}

	printStage(res, ed)
	return nil
}

func printStage(res staging.Result, ed staging.Edition) {
	fmt.Println(res.Stage.Label())
	fmt.Printf("  severity: %s\n", res.Stage.Severity())
	fmt.Printf("  edition:  %s\n", ed)
	if res.Imprecise {
		fmt.Println("  note: imprecise; bare M1 recorded, sub-stage unknown, best available group shown")
	}
	if res.Stage == staging.StageUnknown {
		fmt.Println("  note: stage cannot be determined from the supplied codes")
	}
}
