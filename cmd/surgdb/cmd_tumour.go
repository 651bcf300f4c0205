// Package main implements tumour pathology CLI commands for surgdb.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
)

var (
	tumourEpisode   string
	tumourSite      string
	tumourHistology string
	tumourBasis     string
	tumourT         string
	tumourN         string
	tumourM         string
	tumourEdition   int
	tumourCRM       float64
)

var tumourCmd = &cobra.Command{
	Use:   "tumour",
	Short: "Manage tumour pathology records",
}

var tumourAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a tumour with its TNM staging",
	Long: `Record a tumour. The TNM codes are validated against the AJCC
edition before the write; the computed stage group is shown but never
stored.`,
	RunE: runTumourAdd,
}

var tumourListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an episode's tumours with computed stage groups",
	RunE:  runTumourList,
}

var tumourRestageCmd = &cobra.Command{
	Use:   "restage <tumour-id>",
	Short: "Replace a tumour's TNM codes",
	Args:  cobra.ExactArgs(1),
	RunE:  runTumourRestage,
}

func init() {
	tumourAddCmd.Flags().StringVar(&tumourEpisode, "episode", "", "episode id (required)")
	tumourAddCmd.Flags().StringVar(&tumourSite, "site", "", "tumour site (required)")
	tumourAddCmd.Flags().StringVar(&tumourHistology, "histology", "", "histology")
	tumourAddCmd.Flags().StringVar(&tumourBasis, "basis", "clinical", "staging basis (clinical|pathological)")
	tumourAddCmd.Flags().StringVar(&tumourT, "t", "", "T code (empty = not assessed)")
	tumourAddCmd.Flags().StringVar(&tumourN, "n", "", "N code (empty = not assessed)")
	tumourAddCmd.Flags().StringVar(&tumourM, "m", "", "M code (empty = not assessed)")
	tumourAddCmd.Flags().IntVar(&tumourEdition, "edition", 0, "AJCC edition, 7 or 8 (default from config)")
	tumourAddCmd.Flags().Float64Var(&tumourCRM, "crm", -1, "circumferential resection margin, mm")
	_ = tumourAddCmd.MarkFlagRequired("episode")
	_ = tumourAddCmd.MarkFlagRequired("site")

	tumourListCmd.Flags().StringVar(&tumourEpisode, "episode", "", "episode id (required)")
	_ = tumourListCmd.MarkFlagRequired("episode")

	tumourRestageCmd.Flags().StringVar(&tumourT, "t", "", "T code")
	tumourRestageCmd.Flags().StringVar(&tumourN, "n", "", "N code")
	tumourRestageCmd.Flags().StringVar(&tumourM, "m", "", "M code")
	tumourRestageCmd.Flags().IntVar(&tumourEdition, "edition", 0, "AJCC edition, 7 or 8 (default from config)")

	tumourCmd.AddCommand(tumourAddCmd)
	tumourCmd.AddCommand(tumourListCmd)
	tumourCmd.AddCommand(tumourRestageCmd)
}

func chosenEdition() staging.Edition {
	if tumourEdition != 0 {
		return staging.Edition(tumourEdition)
	}
	return cfg.DefaultEdition()
}

func runTumourAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	t := records.Tumour{
		EpisodeID: tumourEpisode,
		Site:      tumourSite,
		Histology: tumourHistology,
		Basis:     records.StagingBasis(tumourBasis),
		T:         tumourT,
		N:         tumourN,
		M:         tumourM,
		Edition:   chosenEdition(),
	}
	if tumourCRM >= 0 {
		crm := tumourCRM
		t.CRMmm = &crm
	}
	if err := st.CreateTumour(&t); err != nil {
		return err
	}

	staged, err := t.Staged()
	if err != nil {
		return err
	}
	fmt.Printf("Tumour recorded: %s\n", t.ID)
	printStage(staged.Result, t.Edition)
	return nil
}

func runTumourList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tumours, err := st.ListTumours(tumourEpisode)
	if err != nil {
		return err
	}
	if len(tumours) == 0 {
		fmt.Println("No tumours recorded for this episode.")
		return nil
	}

	for _, t := range tumours {
		marker := ""
		if t.Result.Imprecise {
			marker = " (imprecise)"
		}
		fmt.Printf("  %s  %-18s %-14s %s/%s/%s  %s%s [%s]\n",
			t.ID, t.Site, t.Basis, t.T, t.N, t.M, t.Label, marker, t.Severity)
	}
	return nil
}

func runTumourRestage(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ed := chosenEdition()
	if err := st.UpdateStaging(args[0], tumourT, tumourN, tumourM, ed); err != nil {
		return err
	}

	staged, err := st.GetTumour(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Tumour restaged: %s\n", args[0])
	printStage(staged.Result, ed)
	return nil
}
