package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ChrisMcGann/potomato/pkg/core"
	"github.com/ChrisMcGann/potomato/pkg/reader"
)

const proteinTable = "Protein\tGene\tA_control Intensity\tB_control Intensity\tA_treat Intensity\tB_treat Intensity\n" +
	"P1\tG1\t2\t4\t8\t16\n" +
	"P2\tG2\t1\t0\t2\t4\n"

func TestVerbosityLevel(t *testing.T) {
	tests := []struct {
		v       int
		want    logrus.Level
		wantErr bool
	}{
		{0, logrus.ErrorLevel, false},
		{1, logrus.WarnLevel, false},
		{2, logrus.InfoLevel, false},
		{3, logrus.DebugLevel, false},
		{4, logrus.InfoLevel, true},
		{-1, logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := verbosityLevel(tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("verbosityLevel(%d) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("verbosityLevel(%d) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestLevelFormatter(t *testing.T) {
	e := &logrus.Entry{
		Level:   logrus.WarnLevel,
		Message: "MaxLFQ requested but not found",
		Data:    logrus.Fields{"b": 2, "a": 1},
	}
	b, err := levelFormatter{}.Format(e)
	if err != nil {
		t.Fatal(err)
	}
	want := "[WARNING] MaxLFQ requested but not found a=1 b=2\n"
	if string(b) != want {
		t.Errorf("Format() = %q, want %q", b, want)
	}
}

func TestStopwatch(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer
	setupLogging(log, logrus.DebugLevel, &buf)

	done := stopwatch(log, "parsing")
	time.Sleep(time.Millisecond)
	done()

	if !strings.Contains(buf.String(), "[DEBUG] parsing finished elapsed=") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

// resetFlags restores every flag in the command tree to its default so that
// values from one Execute do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestIngestCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "combined_protein.tsv")
	if err := os.WriteFile(in, []byte(proteinTable), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "long.tsv")

	stdout, err := runRoot(t, "ingest", in, "-c", "control,treat", "--use-maxlfq=false", "--log2=true", "-o", out, "-v", "0")
	if err != nil {
		t.Fatalf("ingest error = %v", err)
	}
	if !strings.Contains(stdout, "Parsed 2 proteins across 4 samples (8 records, log2 scale)") {
		t.Errorf("unexpected output %q", stdout)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "P1\tB_treat\ttreat\t4\n") {
		t.Errorf("export missing log2 record:\n%s", b)
	}
	if !strings.Contains(string(b), "P2\tB_control\tcontrol\tNA\n") {
		t.Errorf("export missing missing-value record:\n%s", b)
	}
}

func TestValidateCommand(t *testing.T) {
	in := filepath.Join(t.TempDir(), "combined_protein.tsv")
	if err := os.WriteFile(in, []byte(proteinTable), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := runRoot(t, "validate", in, "-c", "control,treat", "--use-maxlfq=false", "-v", "0")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	for _, want := range []string{"Identifier columns: Protein", "Intensity columns: 4", "A_treat -> treat"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	if _, err := runRoot(t, "validate", in, "-c", "control,treat,extra", "--use-maxlfq=false", "-v", "0"); err == nil {
		t.Error("Expected error for tag without replicates")
	}
}

func writeTable(t *testing.T, content string) string {
	t.Helper()
	in := filepath.Join(t.TempDir(), "combined_protein.tsv")
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return in
}

func TestFlagsDoNotCarryOver(t *testing.T) {
	in := writeTable(t, proteinTable)
	out := filepath.Join(t.TempDir(), "long.tsv")

	if _, err := runRoot(t, "ingest", in, "-c", "control,treat", "--use-maxlfq=false", "-o", out, "-v", "0"); err != nil {
		t.Fatalf("first ingest error = %v", err)
	}
	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}

	stdout, err := runRoot(t, "ingest", in, "--use-maxlfq=false", "-v", "0")
	if err != nil {
		t.Fatalf("second ingest error = %v", err)
	}
	if strings.Contains(stdout, "Output:") {
		t.Errorf("second ingest reused -o from the first run:\n%s", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("second ingest wrote %s", out)
	}
}

func TestLog2Setting(t *testing.T) {
	in := writeTable(t, proteinTable)

	tests := []struct {
		name string
		args []string
		env  string
		want string
	}{
		{name: "default is log2", args: nil, want: "log2"},
		{name: "flag disables", args: []string{"--log2=false"}, want: "raw"},
		{name: "environment disables", env: "false", want: "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("POTOMATO_LOG2", tt.env)
			}
			args := append([]string{"summarize", in, "-c", "control,treat", "--use-maxlfq=false", "-v", "0"}, tt.args...)
			stdout, err := runRoot(t, args...)
			if err != nil {
				t.Fatalf("summarize error = %v", err)
			}
			if !strings.Contains(stdout, "Scale: "+tt.want+"\n") {
				t.Errorf("summarize: expected %s scale in %q", tt.want, stdout)
			}

			args = append([]string{"ingest", in, "--use-maxlfq=false", "-v", "0"}, tt.args...)
			stdout, err = runRoot(t, args...)
			if err != nil {
				t.Fatalf("ingest error = %v", err)
			}
			if !strings.Contains(stdout, tt.want+" scale") {
				t.Errorf("ingest: expected %s scale in %q", tt.want, stdout)
			}
		})
	}
}

func TestValidateCommandErrors(t *testing.T) {
	noIdentifier := writeTable(t, "Gene\tA_control Intensity\tB_control Intensity\nG1\t1\t2\n")
	in := writeTable(t, proteinTable)

	var cerr *core.ConfigurationError
	if _, err := runRoot(t, "validate", noIdentifier, "-v", "0"); !errors.As(err, &cerr) {
		t.Errorf("validate without identifier error = %v, want *ConfigurationError", err)
	}

	if _, err := runRoot(t, "validate", in, "-f", "maxquant", "-v", "0"); !errors.Is(err, reader.ErrUnsupportedFormat) {
		t.Errorf("validate with unknown format error = %v, want ErrUnsupportedFormat", err)
	}
}
