package sheets

import "testing"

func TestResolveFindsMarkerRow(t *testing.T) {
	rows := [][]string{
		{"Semi Finished Entry"},
		{"", "", "planned1", "actual1", "planned2", "actual2"},
		{"data", "row"},
	}
	s := Resolve(rows, StageMarkers, MarkerScanRows, FallbackActualStart)
	if s.DataStart != 2 {
		t.Errorf("DataStart = %d, want 2", s.DataStart)
	}
	if got := s.Col("planned1", FallbackPlanned1Col); got != 2 {
		t.Errorf("planned1 col = %d, want 2", got)
	}
	if got := s.Col("actual2", FallbackActual2Col); got != 5 {
		t.Errorf("actual2 col = %d, want 5", got)
	}
}

func TestResolveCaseInsensitiveMarkers(t *testing.T) {
	rows := [][]string{{"Planned1", " ACTUAL1 "}}
	s := Resolve(rows, StageMarkers, MarkerScanRows, FallbackActualStart)
	if got := s.Col("planned1", -1); got != 0 {
		t.Errorf("planned1 col = %d, want 0", got)
	}
	if got := s.Col("actual1", -1); got != 1 {
		t.Errorf("actual1 col = %d, want 1", got)
	}
}

func TestResolveFallsBackWhenNoMarkers(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"c", "d"},
	}
	s := Resolve(rows, StageMarkers, MarkerScanRows, FallbackActualStart)
	if s.DataStart != FallbackActualStart {
		t.Errorf("DataStart = %d, want %d", s.DataStart, FallbackActualStart)
	}
	if got := s.Col("planned1", FallbackPlanned1Col); got != FallbackPlanned1Col {
		t.Errorf("planned1 col = %d, want fallback %d", got, FallbackPlanned1Col)
	}
}

func TestResolveStopsScanningAtLimit(t *testing.T) {
	rows := make([][]string, 15)
	for i := range rows {
		rows[i] = []string{"x"}
	}
	rows[12] = []string{"planned1"}
	s := Resolve(rows, StageMarkers, MarkerScanRows, FallbackActualStart)
	if _, ok := s.Columns["planned1"]; ok {
		t.Error("marker beyond scan window should be ignored")
	}
	if s.DataStart != FallbackActualStart {
		t.Errorf("DataStart = %d, want fallback %d", s.DataStart, FallbackActualStart)
	}
}
