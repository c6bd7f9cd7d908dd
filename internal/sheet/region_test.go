package sheet

import "testing"

func TestColumnName(t *testing.T) {
	tests := map[int]string{0: "", 1: "A", 3: "C", 7: "G", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}
	for col, want := range tests {
		if got := ColumnName(col); got != want {
			t.Errorf("ColumnName(%d) = %q, want %q", col, got, want)
		}
	}
}

func TestRegionA1(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   string
	}{
		{"no sheet", Region{Row: 1, Col: 1, Rows: 51, Cols: 7}, "A1:G51"},
		{"plain sheet", Region{Sheet: "Sheet1", Row: 52, Col: 1, Rows: 10, Cols: 3}, "Sheet1!A52:C61"},
		{"quoted sheet", Region{Sheet: "Top 50", Row: 1, Col: 1, Rows: 1, Cols: 1}, "'Top 50'!A1:A1"},
		{"apostrophe", Region{Sheet: "Bob's", Row: 2, Col: 2, Rows: 2, Cols: 2}, "'Bob''s'!B2:C3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.A1(); got != tt.want {
				t.Errorf("A1() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{Row: 52, Col: 1, Rows: 10, Cols: 3}
	if !r.Contains(52, 1) || !r.Contains(61, 3) {
		t.Error("corners should be inside")
	}
	if r.Contains(51, 1) || r.Contains(62, 1) || r.Contains(55, 4) {
		t.Error("outside cells reported inside")
	}
}
