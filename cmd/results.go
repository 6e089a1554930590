package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/searchkit/internal/store"
	"github.com/spf13/cobra"
)

var (
	resultsDataDir string
	olderThanDays  int
	forceClean     bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage archived run results",
	Long:  `List, inspect, and clean archived run records saved by run --save or the server.`,
}

var listResultsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all archived runs",
	RunE:  runListResults,
}

var showResultsCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a full archived run record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowResult,
}

var cleanResultsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old archived runs",
	Long:  `Deletes archived runs older than the retention window.`,
	RunE:  runCleanResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.PersistentFlags().StringVar(&resultsDataDir, "data", "./data", "Run archive directory")

	cleanResultsCmd.Flags().IntVar(&olderThanDays, "older-than", 30, "Delete runs older than N days")
	cleanResultsCmd.Flags().BoolVar(&forceClean, "force", false, "Delete without confirmation")

	resultsCmd.AddCommand(listResultsCmd)
	resultsCmd.AddCommand(showResultsCmd)
	resultsCmd.AddCommand(cleanResultsCmd)
}

func runListResults(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return err
	}

	infos, err := st.ListRuns()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Println("No archived runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tALGORITHM\tOBJECTIVE\tGENES\tITERATIONS\tBEST FITNESS\tFINISHED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%s\n",
			info.RunID, info.Algorithm, info.Objective, info.Genes,
			info.Iterations, info.BestFitness,
			info.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func runShowResult(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return err
	}

	record, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format run record: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// selectStaleRuns returns the runs that finished more than olderThanDays
// days before now.
func selectStaleRuns(infos []store.RunInfo, olderThanDays int, now time.Time) []store.RunInfo {
	cutoff := now.AddDate(0, 0, -olderThanDays)
	var stale []store.RunInfo
	for _, info := range infos {
		if info.Timestamp.Before(cutoff) {
			stale = append(stale, info)
		}
	}
	return stale
}

func runCleanResults(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return err
	}

	infos, err := st.ListRuns()
	if err != nil {
		return err
	}

	stale := selectStaleRuns(infos, olderThanDays, time.Now())

	if len(stale) == 0 {
		fmt.Println("No runs older than the retention window")
		return nil
	}

	if !forceClean {
		fmt.Printf("Would delete %d run(s) older than %d days. Re-run with --force to confirm.\n",
			len(stale), olderThanDays)
		return nil
	}

	for _, info := range stale {
		if err := st.DeleteRun(info.RunID); err != nil {
			return fmt.Errorf("failed to delete run %s: %w", info.RunID, err)
		}
		fmt.Printf("Deleted run %s\n", info.RunID)
	}
	return nil
}
