package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ChrisMcGann/potomato/pkg/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [protein_file]",
	Short: "Summarize protein table contents",
	Long: `Print summary statistics about a protein table: protein and record counts,
and per-sample detection counts, mean, standard deviation, median and range.
Statistics are on the log2 scale unless --log2=false is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prots, err := loadDataset(args, viper.GetBool(keyLog2))
		if err != nil {
			return err
		}
		return summary.Summarize(prots).Write(cmd.OutOrStdout())
	},
}
