package ionquant

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/guregu/null.v3"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

func TestSampleName(t *testing.T) {
	tests := []struct {
		column    string
		useMaxLFQ bool
		want      string
	}{
		{"A_control Intensity", false, "A_control"},
		{"A_control INTENSITY", false, "A_control"},
		{"A_control MaxLFQ Intensity", true, "A_control"},
		{"A_control MaxLFQ Intensity", false, "A_control MaxLFQ"},
		{"Intensity of A", false, "Intensity of A"},
		{"A_intensity Intensity", false, "A_intensity"},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := SampleName(tt.column, tt.useMaxLFQ); got != tt.want {
				t.Errorf("SampleName(%q, %t) = %q, want %q", tt.column, tt.useMaxLFQ, got, tt.want)
			}
		})
	}
}

func TestParseIntensity(t *testing.T) {
	tests := []struct {
		cell    string
		want    null.Float
		wantErr bool
	}{
		{cell: "1234.5", want: null.FloatFrom(1234.5)},
		{cell: "1e6", want: null.FloatFrom(1e6)},
		{cell: "0", want: null.Float{}},
		{cell: "0.0", want: null.Float{}},
		{cell: "", want: null.Float{}},
		{cell: "NA", want: null.Float{}},
		{cell: "NaN", want: null.Float{}},
		{cell: "-3", want: null.FloatFrom(-3)},
		{cell: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := ParseIntensity(tt.cell)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIntensity(%q) error = %v, wantErr %v", tt.cell, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseIntensity(%q) = %+v, want %+v", tt.cell, got, tt.want)
			}
		})
	}
}

func reshapeTable(t *testing.T) *core.RawTable {
	t.Helper()
	tbl, err := core.NewRawTable(
		[]string{"Protein", "A_control Intensity", "B_control Intensity", "A_treat Intensity", "B_treat Intensity"},
		[][]string{
			{"P1", "100", "0", "400", "800"},
			{"P2", "50", "60", "0", "80"},
			{"P3", "1", "2", "3", "4"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestReshape(t *testing.T) {
	tbl := reshapeTable(t)
	sel := Selection{Columns: []string{"A_control Intensity", "B_control Intensity", "A_treat Intensity", "B_treat Intensity"}}

	records, idCols, err := Reshape(tbl, []string{"Protein"}, sel)
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}

	if diff := cmp.Diff([]string{"protein"}, idCols); diff != "" {
		t.Errorf("identifier columns mismatch (-want +got):\n%s", diff)
	}
	if len(records) != tbl.NumRows()*len(sel.Columns) {
		t.Fatalf("Expected %d records, got %d", tbl.NumRows()*len(sel.Columns), len(records))
	}

	type pair struct{ protein, sample string }
	seen := make(map[pair]int)
	for _, rec := range records {
		seen[pair{rec.IDs[0], rec.Sample}]++
	}
	for _, p := range []string{"P1", "P2", "P3"} {
		for _, s := range []string{"A_control", "B_control", "A_treat", "B_treat"} {
			if seen[pair{p, s}] != 1 {
				t.Errorf("pair (%s, %s) appears %d times, want 1", p, s, seen[pair{p, s}])
			}
		}
	}

	// Zeros become missing, never numeric zero
	for _, rec := range records {
		if rec.Intensity.Valid && rec.Intensity.Float64 == 0 {
			t.Errorf("record %v kept a numeric zero", rec)
		}
	}
	want := core.Record{IDs: []string{"P1"}, Sample: "B_control", Intensity: null.Float{}}
	if diff := cmp.Diff(want, records[3]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestReshapeErrors(t *testing.T) {
	tbl := reshapeTable(t)

	if _, _, err := Reshape(tbl, []string{"Gene"}, Selection{Columns: []string{"A_control Intensity"}}); err == nil {
		t.Error("Expected error for unknown identifier column")
	}
	if _, _, err := Reshape(tbl, []string{"Protein"}, Selection{Columns: []string{"C Intensity"}}); err == nil {
		t.Error("Expected error for unknown intensity column")
	}

	bad, err := core.NewRawTable([]string{"Protein", "A Intensity"}, [][]string{{"P1", "high"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Reshape(bad, []string{"Protein"}, Selection{Columns: []string{"A Intensity"}}); err == nil {
		t.Error("Expected error for unparseable intensity")
	}
}
