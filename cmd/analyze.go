package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/finlens/finlens/internal/format"
	"github.com/finlens/finlens/internal/ingest"
	"github.com/finlens/finlens/internal/statement"
)

var analyzeAI bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <statement.xlsx>",
	Short: "Analyze a statement workbook and print the derived table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		raw, err := ingest.ReadStatementFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read statement")
		}

		computed, err := statement.Compute(raw)
		if err != nil {
			return eris.Wrap(err, "analyze statement")
		}
		snap := statement.Liquidity(computed)

		printTable(computed)
		printLiquidity(snap)

		if analyzeAI {
			provider, err := initProvider(ctx)
			if err != nil {
				return err
			}
			svc, err := initNarrative(provider)
			if err != nil {
				return err
			}

			fmt.Println("\nAI commentary:")
			fmt.Println(svc.Analyze(ctx, computed, snap))
		}

		return nil
	},
}

func printTable(st *statement.Statement) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE ITEM\tPRIOR\tCURRENT\tGROWTH\tPRIOR WT\tCURRENT WT")
	for _, r := range st.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			format.Value(r.Prior),
			format.Value(r.Current),
			format.Percent(r.Growth),
			format.Percent(r.PriorWeight),
			format.Percent(r.CurrentWeight),
		)
	}
	w.Flush()
}

func printLiquidity(snap statement.Snapshot) {
	fmt.Printf("\nCurrent ratio: prior %s, current %s", format.Ratio(snap.Prior), format.Ratio(snap.Current))
	if delta, ok := snap.Delta(); ok {
		fmt.Printf(" (%s)", format.Delta(delta))
	}
	fmt.Println()
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeAI, "ai", false, "request AI commentary after the table")
	rootCmd.AddCommand(analyzeCmd)
}
