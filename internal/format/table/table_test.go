package table

import "testing"

func TestLinesAlignColumns(t *testing.T) {
	tb := New(Column{Title: "ITEM"}, Column{Title: "KEY", Align: AlignRight}, Column{Title: "ID"})
	tb.Add("Copy", "Ctrl+C", "copy")
	tb.Add("  Näive", "", "naive", "ignored")
	tb.Add("界")

	want := []string{
		"ITEM        KEY  ID",
		"Copy     Ctrl+C  copy",
		"  Näive          naive",
		"界",
	}
	got := tb.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestEmptyTableRendersHeader(t *testing.T) {
	if got := New(Column{Title: "A"}, Column{Title: "B"}).String(); got != "A  B\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
