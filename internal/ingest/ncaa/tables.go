package ncaa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/ceres/internal/pbp"
)

// ParseHTML converts raw HTML to a goquery Document.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// ExtractTables lifts every top-level table on the page, in document order.
// A cell spanning several columns is repeated in each of them.
func ExtractTables(html string) ([]pbp.Table, error) {
	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}
	var tables []pbp.Table
	topLevel(doc.Selection).Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, readTable(t))
	})
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	return tables, nil
}

func topLevel(s *goquery.Selection) *goquery.Selection {
	return s.Find("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		return t.ParentsFiltered("table").Length() == 0
	})
}

func readTable(t *goquery.Selection) pbp.Table {
	var table pbp.Table
	rows := ownRows(t)
	rows.Each(func(i int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if table.Header == nil && len(table.Rows) == 0 &&
			cells.Length() > 0 && cells.Length() == tr.ChildrenFiltered("th").Length() {
			table.Header = rowText(cells)
			return
		}
		if tr.ChildrenFiltered("td").Length() == 0 {
			return
		}
		table.Rows = append(table.Rows, rowText(cells))
	})
	return table
}

// ownRows skips rows belonging to nested tables.
func ownRows(t *goquery.Selection) *goquery.Selection {
	return t.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.ParentsFiltered("table").First().IsSelection(t)
	})
}

func rowText(cells *goquery.Selection) []string {
	var out []string
	cells.Each(func(_ int, c *goquery.Selection) {
		text := cleanText(c.Text())
		span, _ := strconv.Atoi(c.AttrOr("colspan", "1"))
		if span < 1 {
			span = 1
		}
		for range span {
			out = append(out, text)
		}
	})
	return out
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
