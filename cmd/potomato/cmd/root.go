// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ChrisMcGann/potomato/pkg/reader"
)

// Config keys, shared by flags, environment variables and the config file
const (
	keyConfig      = "config"
	keyVerbosity   = "verbosity"
	keyProteinFile = "protein-file"
	keyFormat      = "format"
	keyConditions  = "conditions"
	keyUseMaxLFQ   = "use-maxlfq"
	keyLog2        = "log2"
	keyOut         = "out"
)

var rootCmd = &cobra.Command{
	Use:   "potomato",
	Short: "potomato - Protein quantification ingestion tool",
	Long: `potomato reads wide-format protein intensity tables produced by IonQuant,
reshapes them into long form and assigns samples to experimental conditions.

Condition tags are matched against sample names as case-insensitive substrings.
Every tag must match at least two samples and no sample may match two tags.

Every flag can also be set with a POTOMATO_<FLAG> environment variable
(e.g. POTOMATO_USE_MAXLFQ=false) or in a --config file.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	pf := rootCmd.PersistentFlags()
	pf.String(keyConfig, "", "Config file (YAML, TOML or JSON)")
	pf.IntP(keyVerbosity, "v", 2, "Verbosity: 0 error, 1 warning, 2 info, 3 debug")
	pf.StringP(keyProteinFile, "i", "", "Protein intensity input file (or pass it as an argument)")
	pf.StringP(keyFormat, "f", reader.FormatIonQuant, "Protein input format: ionquant")
	pf.StringP(keyConditions, "c", "", "Comma-separated condition tags (e.g. 'control,treat')")
	pf.Bool(keyUseMaxLFQ, true, "Use MaxLFQ intensities if present")
	pf.Bool(keyLog2, true, "Log2-transform intensities after parsing")

	for _, key := range []string{keyVerbosity, keyProteinFile, keyFormat, keyConditions, keyUseMaxLFQ, keyLog2} {
		viper.BindPFlag(key, pf.Lookup(key))
	}

	viper.SetEnvPrefix("potomato")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// setup reads the config file, if any, and configures logging
func setup(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString(keyConfig); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	level, err := verbosityLevel(viper.GetInt(keyVerbosity))
	if err != nil {
		return err
	}
	setupLogging(logrus.StandardLogger(), level, cmd.ErrOrStderr())
	return nil
}

// parserConfig collects the parser settings from flags, environment and config file
func parserConfig() reader.Config {
	return reader.Config{
		Format:        viper.GetString(keyFormat),
		Level:         reader.LevelProtein,
		ConditionTags: viper.GetString(keyConditions),
		UseMaxLFQ:     viper.GetBool(keyUseMaxLFQ),
		Logger:        logrus.StandardLogger(),
	}
}

// proteinFile returns the input path from the arguments or the protein-file setting
func proteinFile(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path := viper.GetString(keyProteinFile); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no protein input file given")
}
