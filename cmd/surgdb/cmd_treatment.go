// Package main implements treatment CLI commands for surgdb.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
)

var (
	treatmentEpisode string
	treatmentKind    string
	treatmentStart   string
	treatmentDetail  string
)

var treatmentCmd = &cobra.Command{
	Use:   "treatment",
	Short: "Manage treatment records",
}

var treatmentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a treatment",
	RunE:  runTreatmentAdd,
}

var treatmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an episode's treatments",
	RunE:  runTreatmentList,
}

func init() {
	treatmentAddCmd.Flags().StringVar(&treatmentEpisode, "episode", "", "episode id (required)")
	treatmentAddCmd.Flags().StringVar(&treatmentKind, "kind", "", "surgery|chemotherapy|radiotherapy|palliative (required)")
	treatmentAddCmd.Flags().StringVar(&treatmentStart, "start", "", "start date (YYYY-MM-DD)")
	treatmentAddCmd.Flags().StringVar(&treatmentDetail, "detail", "", "free-text detail")
	_ = treatmentAddCmd.MarkFlagRequired("episode")
	_ = treatmentAddCmd.MarkFlagRequired("kind")

	treatmentListCmd.Flags().StringVar(&treatmentEpisode, "episode", "", "episode id (required)")
	_ = treatmentListCmd.MarkFlagRequired("episode")

	treatmentCmd.AddCommand(treatmentAddCmd)
	treatmentCmd.AddCommand(treatmentListCmd)
}

func runTreatmentAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr := records.Treatment{
		EpisodeID: treatmentEpisode,
		Kind:      records.TreatmentKind(treatmentKind),
		StartDate: treatmentStart,
		Detail:    treatmentDetail,
	}
	if err := st.CreateTreatment(&tr); err != nil {
		return err
	}

	fmt.Printf("Treatment recorded: %s\n", tr.ID)
	return nil
}

func runTreatmentList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	treatments, err := st.ListTreatments(treatmentEpisode)
	if err != nil {
		return err
	}
	if len(treatments) == 0 {
		fmt.Println("No treatments recorded for this episode.")
		return nil
	}

	for _, tr := range treatments {
		fmt.Printf("  %s  %-14s %-10s %s\n", tr.ID, tr.Kind, tr.StartDate, tr.Detail)
	}
	return nil
}
