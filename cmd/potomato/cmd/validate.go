package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ChrisMcGann/potomato/pkg/core"
	"github.com/ChrisMcGann/potomato/pkg/reader"
	"github.com/ChrisMcGann/potomato/pkg/reader/ionquant"
	"github.com/ChrisMcGann/potomato/pkg/reader/tsv"
)

var validateCmd = &cobra.Command{
	Use:   "validate [protein_file]",
	Short: "Validate column headers and condition tags",
	Long: `Check that a protein table's header has identifier and intensity columns
and that the condition tags assign samples unambiguously, without reading the rows.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	path, err := proteinFile(args)
	if err != nil {
		return err
	}

	cfg := parserConfig()
	if _, err := reader.NewParser(cfg); err != nil {
		return err
	}

	r, err := tsv.Open(path, log)
	if err != nil {
		return err
	}
	defer r.Close()

	groups := ionquant.ClassifyColumns(r.Header())
	if len(groups.Identifier) == 0 {
		return &core.ConfigurationError{Message: fmt.Sprintf("%s: no protein identifier column found", path)}
	}
	sel, err := ionquant.SelectIntensityColumns(groups, cfg.UseMaxLFQ, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Identifier columns: %s\n", strings.Join(groups.Identifier, ", "))
	fmt.Fprintf(out, "MaxLFQ in use: %t\n", sel.UseMaxLFQ)
	fmt.Fprintf(out, "Intensity columns: %d\n", len(sel.Columns))

	tags := viper.GetString(keyConditions)
	if tags == "" {
		return nil
	}
	conditions, err := ionquant.ParseConditionTags(tags, log)
	if err != nil {
		return err
	}
	assignment, err := ionquant.ValidateConditionTags(conditions, sel.Columns, log)
	if err != nil {
		return err
	}
	for _, col := range sel.Columns {
		cond, ok := assignment[col]
		if !ok {
			cond = "NA"
		}
		fmt.Fprintf(out, "  %s -> %s\n", ionquant.SampleName(col, sel.UseMaxLFQ), cond)
	}
	return nil
}
