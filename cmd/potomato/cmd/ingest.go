package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ChrisMcGann/potomato/pkg/core"
	"github.com/ChrisMcGann/potomato/pkg/reader"
	"github.com/ChrisMcGann/potomato/pkg/season"
	"github.com/ChrisMcGann/potomato/pkg/writer/sqlite"
	"github.com/ChrisMcGann/potomato/pkg/writer/tsv"
)

func init() {
	ingestCmd.Flags().StringP(keyOut, "o", "", "Write the long-form dataset to this file (.db/.sqlite for SQLite, otherwise TSV)")
	viper.BindPFlag(keyOut, ingestCmd.Flags().Lookup(keyOut))
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [protein_file]",
	Short: "Parse a protein table into a long-form dataset",
	Long: `Parse a wide-format protein intensity table, assign samples to conditions
and optionally log2-transform and export the resulting long-form dataset.

Examples:
  # Parse with MaxLFQ intensities and two conditions
  potomato ingest combined_protein.tsv --conditions control,treat

  # Use raw intensities and write a SQLite database
  potomato ingest combined_protein.tsv -c control,treat --use-maxlfq=false --out proteins.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	prots, err := loadDataset(args, viper.GetBool(keyLog2))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d proteins across %d samples (%d records, %s scale)\n",
		len(prots.Proteins()), len(prots.Samples()), prots.Len(), prots.Scale())

	if out := viper.GetString(keyOut); out != "" {
		defer stopwatch(log, "export")()
		if err := export(out, prots); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", out)
	}
	return nil
}

// loadDataset parses the protein file and applies the log2 transform if requested
func loadDataset(args []string, log2 bool) (*core.ProteinDataset, error) {
	log := logrus.StandardLogger()

	path, err := proteinFile(args)
	if err != nil {
		return nil, err
	}

	parser, err := reader.NewParser(parserConfig())
	if err != nil {
		return nil, err
	}

	done := stopwatch(log, "parsing")
	prots, err := parser.Parse(core.FilePath(path))
	done()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if log2 {
		seasoning := &season.Config{Transform: season.TransformLog2, Logger: log}
		if err := seasoning.Apply(prots); err != nil {
			return nil, fmt.Errorf("failed to preprocess %s: %w", path, err)
		}
	}
	return prots, nil
}

func export(path string, prots *core.ProteinDataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		if err := sqlite.WriteFile(path, prots); err != nil {
			return fmt.Errorf("failed to write database: %w", err)
		}
	default:
		if err := tsv.WriteFile(path, prots); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	return nil
}
