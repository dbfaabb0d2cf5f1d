package sheets

import "strings"

// Schema describes where the real data of a fetched sheet begins and
// which column holds each marker-discovered field. It is resolved once
// per fetch and passed to the row mappers, instead of re-scanning the
// header block per field.
type Schema struct {
	// 0-based index of the first data row
	DataStart int
	// 0-based column index per marker token
	Columns map[string]int
}

// Col returns the resolved column for a marker, or the fallback when
// the marker was not found in the header block.
func (s Schema) Col(marker string, fallback int) int {
	if idx, ok := s.Columns[marker]; ok {
		return idx
	}
	return fallback
}

// Resolve scans the first maxScan rows for header cells whose
// normalized text exactly equals one of the marker tokens. The first
// row containing any marker is the header row; data starts on the row
// after it. When no marker is found anywhere, data starts at
// fallbackStart and every column falls back.
func Resolve(rows [][]string, markers []string, maxScan, fallbackStart int) Schema {
	schema := Schema{DataStart: fallbackStart, Columns: make(map[string]int)}

	limit := maxScan
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		found := false
		for j, cell := range rows[i] {
			val := strings.ToLower(strings.TrimSpace(cell))
			for _, m := range markers {
				if val == m {
					if _, dup := schema.Columns[m]; !dup {
						schema.Columns[m] = j
					}
					found = true
				}
			}
		}
		if found {
			schema.DataStart = i + 1
			return schema
		}
	}
	return schema
}
