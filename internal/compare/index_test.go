package compare

import (
	"testing"

	"github.com/91225Gov/po-comparison/internal/model"
)

func makeTable(sheet string, columns []string, rows ...[]any) *model.Table {
	t := &model.Table{
		SheetName: sheet,
		Columns:   columns,
		Rows:      []model.Row{},
	}
	for _, values := range rows {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(values) {
				row[col] = values[i]
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestBuildKeyIndex(t *testing.T) {
	table := makeTable("Sheet1", []string{"ID", "Amount"},
		[]any{"1", "10"},
		[]any{"2", "20"},
		[]any{"3", "30"},
	)

	index := BuildKeyIndex(table, []string{"ID"})
	if got, want := len(index), 3; got != want {
		t.Fatalf("index size = %d, want %d", got, want)
	}
	if got, want := index["2"], 1; got != want {
		t.Fatalf("index[2] = %d, want %d", got, want)
	}
}

func TestBuildKeyIndex_DuplicateKeyFirstWins(t *testing.T) {
	table := makeTable("Sheet1", []string{"ID", "Amount"},
		[]any{"1", "10"},
		[]any{"1", "99"},
		[]any{"2", "20"},
	)

	index := BuildKeyIndex(table, []string{"ID"})
	if got, want := index["1"], 0; got != want {
		t.Fatalf("duplicate key row = %d, want first occurrence %d", got, want)
	}
}

func TestBuildKeyIndex_MissingKeyColumn(t *testing.T) {
	table := makeTable("Sheet1", []string{"ID"}, []any{"1"})

	index := BuildKeyIndex(table, []string{"Vendor"})
	if got := len(index); got != 0 {
		t.Fatalf("index size = %d, want 0 for missing key column", got)
	}
}

func TestCompositeKey_MultipleColumns(t *testing.T) {
	table := makeTable("Sheet1", []string{"Org", "Doc"},
		[]any{"1000", "45001"},
		[]any{"1000", "45002"},
		[]any{"2000", "45001"},
	)

	index := BuildKeyIndex(table, []string{"Org", "Doc"})
	if got, want := len(index), 3; got != want {
		t.Fatalf("index size = %d, want %d", got, want)
	}

	key := CompositeKey(table.Rows[2], []string{"Org", "Doc"})
	if got, want := index[key], 2; got != want {
		t.Fatalf("index[%q] = %d, want %d", key, got, want)
	}
	if got, want := KeyDisplay(key), "2000 / 45001"; got != want {
		t.Fatalf("KeyDisplay = %q, want %q", got, want)
	}
	if got := KeyParts(key); len(got) != 2 || got[0] != "2000" || got[1] != "45001" {
		t.Fatalf("KeyParts = %v, want [2000 45001]", got)
	}
}

func TestCompositeKey_NormalizesSegments(t *testing.T) {
	row := model.Row{"ID": "  7 ", "Year": float64(2026)}
	key := CompositeKey(row, []string{"ID", "Year"})
	if got, want := KeyDisplay(key), "7 / 2026"; got != want {
		t.Fatalf("KeyDisplay = %q, want %q", got, want)
	}
}
