package ncaa

import "strings"

// ParsePositions maps player names to their listed position (G, F or C)
// using every roster table on an individual stats page.
func ParsePositions(html string) (map[string]string, error) {
	tables, err := ExtractTables(html)
	if err != nil {
		return nil, err
	}
	positions := make(map[string]string)
	for _, t := range tables {
		name, pos := -1, -1
		for i, h := range t.Header {
			switch strings.TrimSpace(h) {
			case "Name":
				name = i
			case "P", "Pos":
				pos = i
			}
		}
		if name < 0 || pos < 0 {
			continue
		}
		for _, row := range t.Rows {
			n, p := cellAt(row, name), cellAt(row, pos)
			if n == "" || p == "" {
				continue
			}
			positions[n] = p
		}
	}
	if len(positions) == 0 {
		return nil, ErrUnexpectedLayout
	}
	return positions, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
