package main

import (
	"strings"
	"testing"
)

func TestResultTableRendersHeadersAndRows(t *testing.T) {
	tbl := newResultTable(col("Title"), numCol("Year"))
	tbl.addRow("Parasite", 2019)
	tbl.addRow("The Matrix", 1999)

	out := tbl.render()
	for _, want := range []string{"TITLE", "YEAR", "Parasite", "2019", "The Matrix", "1999"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestResultTablePadsShortRows(t *testing.T) {
	tbl := newResultTable(col("File"), col("Reason"), col("Best"))
	tbl.addRow("movie.mkv")

	row := tbl.rows[0]
	if len(row) != 3 {
		t.Fatalf("row length = %d, want 3", len(row))
	}
	if row[1] != "" || row[2] != "" {
		t.Fatalf("expected empty padding cells, got %v", row)
	}
	if out := tbl.render(); !strings.Contains(out, "movie.mkv") {
		t.Fatalf("render missing cell:\n%s", out)
	}
}

func TestResultTableEmpty(t *testing.T) {
	tbl := newResultTable(col("Title"))
	if !tbl.empty() {
		t.Fatal("new table should be empty")
	}
	tbl.addRow("x")
	if tbl.empty() {
		t.Fatal("table with a row should not be empty")
	}
}
