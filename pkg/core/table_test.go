package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRawTable(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		rows    [][]string
		wantErr bool
	}{
		{
			name:   "valid table",
			header: []string{"Protein", "A Intensity"},
			rows:   [][]string{{"P1", "10"}, {"P2", "0"}},
		},
		{
			name:    "ragged row",
			header:  []string{"Protein", "A Intensity"},
			rows:    [][]string{{"P1"}},
			wantErr: true,
		},
		{
			name:    "duplicate column",
			header:  []string{"Protein", "Protein"},
			rows:    [][]string{{"P1", "P1"}},
			wantErr: true,
		},
		{
			name:   "header only",
			header: []string{"Protein"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRawTable(tt.header, tt.rows)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRawTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRawTableValidateUnequalColumns(t *testing.T) {
	tbl := &RawTable{Columns: []Column{
		{Name: "Protein", Cells: []string{"P1", "P2"}},
		{Name: "A Intensity", Cells: []string{"1"}},
	}}

	var verr *ValidationError
	if err := tbl.Validate(); !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
}

func TestRawTableSelect(t *testing.T) {
	tbl, err := NewRawTable(
		[]string{"Protein", "Gene", "A Intensity"},
		[][]string{{"P1", "G1", "1"}, {"P2", "G2", "2"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	sub, err := tbl.Select([]string{"A Intensity", "Protein"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A Intensity", "Protein"}, sub.Names()); diff != "" {
		t.Errorf("Select() names mismatch (-want +got):\n%s", diff)
	}
	if sub.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", sub.NumRows())
	}

	if _, err := tbl.Select([]string{"Missing"}); err == nil {
		t.Error("Expected error selecting unknown column")
	}
}
