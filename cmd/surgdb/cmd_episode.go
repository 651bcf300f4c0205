// Package main implements episode management CLI commands for surgdb.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
)

var (
	episodePatient   string
	episodeHospital  string
	episodeReferral  string
	episodeDiagnosed string
	episodeStatus    string
)

var episodeCmd = &cobra.Command{
	Use:   "episode",
	Short: "Manage treatment episodes",
	RunE:  runEpisodeList,
}

var episodeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new treatment episode",
	RunE:  runEpisodeAdd,
}

var episodeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List episodes",
	RunE:  runEpisodeList,
}

var episodeShowCmd = &cobra.Command{
	Use:   "show <episode-id>",
	Short: "Show an episode with its tumours and treatments",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpisodeShow,
}

var episodeCloseCmd = &cobra.Command{
	Use:   "close <episode-id>",
	Short: "Mark an episode closed",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpisodeClose,
}

var episodeDeleteCmd = &cobra.Command{
	Use:   "delete <episode-id>",
	Short: "Delete an episode and all its tumours and treatments",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpisodeDelete,
}

func init() {
	episodeAddCmd.Flags().StringVar(&episodePatient, "patient", "", "patient reference (required)")
	episodeAddCmd.Flags().StringVar(&episodeHospital, "hospital", "", "hospital code")
	episodeAddCmd.Flags().StringVar(&episodeReferral, "referral", "", "referral source")
	episodeAddCmd.Flags().StringVar(&episodeDiagnosed, "diagnosed", "", "diagnosis date (YYYY-MM-DD)")
	_ = episodeAddCmd.MarkFlagRequired("patient")

	episodeListCmd.Flags().StringVar(&episodeStatus, "status", "", "filter by status (open|closed)")

	episodeCmd.AddCommand(episodeAddCmd)
	episodeCmd.AddCommand(episodeListCmd)
	episodeCmd.AddCommand(episodeShowCmd)
	episodeCmd.AddCommand(episodeCloseCmd)
	episodeCmd.AddCommand(episodeDeleteCmd)
}

func runEpisodeAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ep := records.Episode{
		PatientRef:     episodePatient,
		Hospital:       episodeHospital,
		ReferralSource: episodeReferral,
		DiagnosisDate:  episodeDiagnosed,
		Status:         records.StatusOpen,
	}
	if err := st.CreateEpisode(&ep); err != nil {
		return err
	}

	fmt.Printf("Episode created: %s\n", ep.ID)
	return nil
}

func runEpisodeList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	eps, err := st.ListEpisodes(records.EpisodeStatus(episodeStatus))
	if err != nil {
		return err
	}
	if len(eps) == 0 {
		fmt.Println("No episodes found.")
		return nil
	}

	fmt.Println(strings.Repeat("─", 72))
	for _, ep := range eps {
		fmt.Printf("  %s  %-14s %-6s %-10s %s\n",
			ep.ID, ep.PatientRef, ep.Hospital, ep.DiagnosisDate, ep.Status)
	}
	fmt.Println(strings.Repeat("─", 72))

	open, closed, err := st.CountByStatus()
	if err != nil {
		return err
	}
	fmt.Printf("Total: %d episodes (%d open, %d closed)\n", len(eps), open, closed)
	return nil
}

func runEpisodeShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ep, err := st.GetEpisode(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Episode %s\n", ep.ID)
	fmt.Printf("  patient:   %s\n", ep.PatientRef)
	fmt.Printf("  hospital:  %s\n", ep.Hospital)
	if ep.ReferralSource != "" {
		fmt.Printf("  referral:  %s\n", ep.ReferralSource)
	}
	fmt.Printf("  diagnosed: %s\n", ep.DiagnosisDate)
	fmt.Printf("  status:    %s\n", ep.Status)

	tumours, err := st.ListTumours(ep.ID)
	if err != nil {
		return err
	}
	fmt.Printf("\nTumours (%d):\n", len(tumours))
	for _, t := range tumours {
		marker := ""
		if t.Result.Imprecise {
			marker = " (imprecise)"
		}
		fmt.Printf("  %s  %-18s %s/%s/%s  %s%s [%s]\n",
			t.ID, t.Site, t.T, t.N, t.M, t.Label, marker, t.Severity)
	}

	treatments, err := st.ListTreatments(ep.ID)
	if err != nil {
		return err
	}
	fmt.Printf("\nTreatments (%d):\n", len(treatments))
	for _, tr := range treatments {
		fmt.Printf("  %s  %-14s %-10s %s\n", tr.ID, tr.Kind, tr.StartDate, tr.Detail)
	}
	return nil
}

func runEpisodeClose(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CloseEpisode(args[0]); err != nil {
		return err
	}
	fmt.Printf("Episode closed: %s\n", args[0])
	return nil
}

func runEpisodeDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteEpisode(args[0]); err != nil {
		return err
	}
	fmt.Printf("Episode deleted: %s\n", args[0])
	return nil
}
