package compare

import (
	"reflect"
	"strings"
	"testing"
)

func TestCompare_SingleDifference(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "10"})
	b := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "20"})

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if got, want := result.CellsCompared, 2; got != want {
		t.Fatalf("cells compared = %d, want %d", got, want)
	}
	if got, want := result.TotalDifferences, 1; got != want {
		t.Fatalf("total differences = %d, want %d", got, want)
	}

	d := result.Differences[0]
	if d.Column != "Amount" {
		t.Fatalf("difference column = %s, want Amount", d.Column)
	}
	if d.ValueFile1 != "10" || d.ValueFile2 != "20" {
		t.Fatalf("difference values = %v / %v, want 10 / 20", d.ValueFile1, d.ValueFile2)
	}
	if d.ExcelRow != 2 {
		t.Fatalf("excel row = %d, want 2", d.ExcelRow)
	}
	if d.ExcelRow2 == nil || *d.ExcelRow2 != 2 {
		t.Fatalf("excel row 2 = %v, want 2", d.ExcelRow2)
	}
	if d.KeyValue != "1" {
		t.Fatalf("key value = %q, want 1", d.KeyValue)
	}

	if got, want := result.MatchPercentage(), 50.0; got != want {
		t.Fatalf("match percentage = %v, want %v", got, want)
	}
	if got, want := len(result.KeyCrosstabs), 1; got != want {
		t.Fatalf("crosstab entries = %d, want %d", got, want)
	}

	entry := result.KeyCrosstabs[0]
	if entry.KeyValue != "1" || entry.DiffCount != 1 {
		t.Fatalf("crosstab entry = %+v, want key 1 with 1 diff", entry)
	}
	if got, want := len(entry.Cells), 2; got != want {
		t.Fatalf("crosstab cells = %d, want %d", got, want)
	}
	// ID 相等不是差异，Amount 是
	if entry.Cells[0].IsDifference || !entry.Cells[1].IsDifference {
		t.Fatalf("cell diff flags = %v/%v, want false/true",
			entry.Cells[0].IsDifference, entry.Cells[1].IsDifference)
	}
}

func TestCompare_KeyMissingInFile2(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"2", "5"})
	b := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"9", "5"})

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	if got, want := result.TotalDifferences, 2; got != want {
		t.Fatalf("total differences = %d, want %d", got, want)
	}
	for _, d := range result.Differences {
		if d.ValueFile2 != MissingSentinel {
			t.Fatalf("difference value file 2 = %v, want sentinel %q", d.ValueFile2, MissingSentinel)
		}
		if d.ExcelRow2 != nil {
			t.Fatalf("excel row 2 = %v, want nil for unmatched row", d.ExcelRow2)
		}
	}
	if got, want := len(result.KeyCrosstabs), 1; got != want {
		t.Fatalf("crosstab entries = %d, want %d", got, want)
	}
	if got := result.KeysOnlyInFile1; len(got) != 1 || got[0] != "2" {
		t.Fatalf("keys only in file 1 = %v, want [2]", got)
	}
	if got := result.KeysOnlyInFile2; len(got) != 1 || got[0] != "9" {
		t.Fatalf("keys only in file 2 = %v, want [9]", got)
	}
}

func TestCompare_KeyColumnMissingIsFatal(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "10"})
	b := makeTable("Sheet1", []string{"Doc", "Amount"}, []any{"1", "10"})

	cmp := NewComparator([]string{"ID", "Amount"})

	result := cmp.Compare(a, b, []string{"ID"})
	if result.Error == "" {
		t.Fatal("expected configuration error for key column missing in File 2")
	}
	if !strings.Contains(result.Error, "'ID'") || !strings.Contains(result.Error, "File 2") {
		t.Fatalf("error message lacks context: %s", result.Error)
	}
	if !strings.Contains(result.Error, "Doc") {
		t.Fatalf("error message lacks available columns: %s", result.Error)
	}
	// 配置错误时不做任何比较
	if result.CellsCompared != 0 || len(result.Differences) != 0 || len(result.KeyCrosstabs) != 0 {
		t.Fatalf("partial comparison leaked into failed result: %+v", result)
	}

	result = cmp.Compare(b, a, []string{"ID"})
	if result.Error == "" || !strings.Contains(result.Error, "File 1") {
		t.Fatalf("expected File 1 error, got: %s", result.Error)
	}
}

func TestCompare_CellsComparedProperty(t *testing.T) {
	// cells_compared == 有效比较列数 × File 1 行数，无论是否匹配
	a := makeTable("Sheet1", []string{"ID", "Amount", "Vendor"},
		[]any{"1", "10", "V1"},
		[]any{"2", "20", "V2"},
		[]any{"3", "30", "V3"},
	)
	b := makeTable("Sheet1", []string{"ID", "Amount", "Vendor"},
		[]any{"1", "10", "V1"},
	)

	cmp := NewComparator([]string{"ID", "Amount", "Vendor"})
	result := cmp.Compare(a, b, []string{"ID"})

	if got, want := result.CellsCompared, 3*3; got != want {
		t.Fatalf("cells compared = %d, want %d", got, want)
	}
	// 行 1 完全匹配，不进交叉表；行 2、3 无匹配，各 3 个差异
	if got, want := result.TotalDifferences, 6; got != want {
		t.Fatalf("total differences = %d, want %d", got, want)
	}
	if got, want := len(result.KeyCrosstabs), 2; got != want {
		t.Fatalf("crosstab entries = %d, want %d", got, want)
	}
}

func TestCompare_MatchedRowWithoutDiffsNotInCrosstab(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"},
		[]any{"1", "10"},
		[]any{"2", "20"},
	)
	b := makeTable("Sheet1", []string{"ID", "Amount"},
		[]any{"1", "10"},
		[]any{"2", "99"},
	)

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	if got, want := len(result.KeyCrosstabs), 1; got != want {
		t.Fatalf("crosstab entries = %d, want %d", got, want)
	}
	if got, want := result.KeyCrosstabs[0].KeyValue, "2"; got != want {
		t.Fatalf("crosstab key = %q, want %q", got, want)
	}

	cmp.IncludeUnchanged = true
	result = cmp.Compare(a, b, []string{"ID"})
	if got, want := len(result.KeyCrosstabs), 2; got != want {
		t.Fatalf("crosstab entries with IncludeUnchanged = %d, want %d", got, want)
	}
}

func TestCompare_NoRegistryOverlap(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "10"})
	b := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "20"})

	cmp := NewComparator([]string{"Vendor", "Plant"})
	result := cmp.Compare(a, b, []string{"ID"})

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.CellsCompared != 0 || result.TotalDifferences != 0 {
		t.Fatalf("cells/diffs = %d/%d, want 0/0", result.CellsCompared, result.TotalDifferences)
	}
	if got, want := result.MatchPercentage(), 100.0; got != want {
		t.Fatalf("match percentage = %v, want %v", got, want)
	}
	if got, want := len(result.RequestedColumnsMissingInFile1), 2; got != want {
		t.Fatalf("requested missing in file 1 = %d, want %d", got, want)
	}
	// 汇总需要能区分"没有可比较列"与"无差异"
	if got := result.Note(); !strings.Contains(got, "requested columns") {
		t.Fatalf("note = %q, want mention of requested columns", got)
	}
}

func TestCompare_ColumnsComparedFollowFile1Order(t *testing.T) {
	// 有效比较列按 File 1 的列序，而非清单顺序
	a := makeTable("Sheet1", []string{"Amount", "Vendor", "ID"}, []any{"10", "V1", "1"})
	b := makeTable("Sheet1", []string{"ID", "Amount", "Vendor"}, []any{"1", "10", "V1"})

	cmp := NewComparator([]string{"ID", "Vendor", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	want := []string{"Amount", "Vendor", "ID"}
	if !reflect.DeepEqual(result.ColumnsCompared, want) {
		t.Fatalf("columns compared = %v, want %v", result.ColumnsCompared, want)
	}
}

func TestCompare_DuplicateKeysInFile2FirstWins(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "10"})
	b := makeTable("Sheet1", []string{"ID", "Amount"},
		[]any{"1", "10"},
		[]any{"1", "99"},
	)

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	// 匹配到 File 2 首次出现的行，因此无差异
	if got, want := result.TotalDifferences, 0; got != want {
		t.Fatalf("total differences = %d, want %d", got, want)
	}
}

func TestCompare_EmptyFile1(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"})
	b := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", "10"})

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	if result.CellsCompared != 0 || len(result.Differences) != 0 || len(result.KeyCrosstabs) != 0 {
		t.Fatalf("empty file 1 produced output: %+v", result)
	}
	if got := result.KeysOnlyInFile2; len(got) != 1 || got[0] != "1" {
		t.Fatalf("keys only in file 2 = %v, want [1]", got)
	}
}

func TestCompare_CompositeKeyMatching(t *testing.T) {
	a := makeTable("Sheet1", []string{"Org", "Doc", "Amount"},
		[]any{"1000", "45001", "10"},
		[]any{"2000", "45001", "20"},
	)
	b := makeTable("Sheet1", []string{"Org", "Doc", "Amount"},
		[]any{"2000", "45001", "25"},
		[]any{"1000", "45001", "10"},
	)

	cmp := NewComparator([]string{"Amount"})
	result := cmp.Compare(a, b, []string{"Org", "Doc"})

	if got, want := result.TotalDifferences, 1; got != want {
		t.Fatalf("total differences = %d, want %d", got, want)
	}
	d := result.Differences[0]
	if got, want := d.KeyValue, "2000 / 45001"; got != want {
		t.Fatalf("difference key = %q, want %q", got, want)
	}
	if d.ValueFile1 != "20" || d.ValueFile2 != "25" {
		t.Fatalf("difference values = %v / %v, want 20 / 25", d.ValueFile1, d.ValueFile2)
	}
}

func TestCompare_ColumnSets(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount", "OnlyA"}, []any{"1", "10", "x"})
	b := makeTable("Sheet1", []string{"ID", "Amount", "OnlyB"}, []any{"1", "10", "y"})

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	if want := []string{"Amount", "ID"}; !reflect.DeepEqual(result.CommonColumns, want) {
		t.Fatalf("common columns = %v, want %v", result.CommonColumns, want)
	}
	if want := []string{"OnlyA"}; !reflect.DeepEqual(result.ColumnsOnlyInFile1, want) {
		t.Fatalf("columns only in file 1 = %v, want %v", result.ColumnsOnlyInFile1, want)
	}
	if want := []string{"OnlyB"}; !reflect.DeepEqual(result.ColumnsOnlyInFile2, want) {
		t.Fatalf("columns only in file 2 = %v, want %v", result.ColumnsOnlyInFile2, want)
	}
}

func TestCompare_Idempotent(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount", "Vendor"},
		[]any{"1", "10", "V1"},
		[]any{"2", "20", "V2"},
		[]any{"3", "30", "V3"},
	)
	b := makeTable("Sheet1", []string{"ID", "Amount", "Vendor"},
		[]any{"3", "31", "V3"},
		[]any{"1", "10", "V9"},
	)

	cmp := NewComparator([]string{"ID", "Amount", "Vendor"})
	first := cmp.Compare(a, b, []string{"ID"})
	second := cmp.Compare(a, b, []string{"ID"})

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated comparison produced different results")
	}
}

func TestCompare_NilAndEmptyTreatedAsEqual(t *testing.T) {
	a := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", nil})
	b := makeTable("Sheet1", []string{"ID", "Amount"}, []any{"1", ""})

	cmp := NewComparator([]string{"ID", "Amount"})
	result := cmp.Compare(a, b, []string{"ID"})

	if got, want := result.TotalDifferences, 0; got != want {
		t.Fatalf("total differences = %d, want %d", got, want)
	}
}
