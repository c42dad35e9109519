package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"grainmgr/cli/internal/backend"

	"github.com/pterm/pterm"
)

// Collection lists one backend collection as a table.
type Collection struct {
	API        backend.API
	Title      string
	Collection backend.Collection
	Page       backend.Page
}

func (c *Collection) Render(ctx context.Context, w io.Writer) error {
	recs, err := c.API.List(ctx, c.Collection, c.Page)
	if err != nil {
		return err
	}
	title(w, c.Title)
	if len(recs) == 0 {
		pterm.Fprintln(w, hintStyle.Sprint("Nothing here yet."))
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(tableData(recs)).Render()
}

// leading columns are shown first when present; the rest follow alphabetically.
var leading = []string{"id", "name", "username"}

func columns(recs []backend.Record) []string {
	seen := map[string]bool{}
	var rest []string
	for _, r := range recs {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	var cols []string
	for _, k := range leading {
		if seen[k] {
			cols = append(cols, k)
		}
	}
	for _, k := range rest {
		if !contains(leading, k) {
			cols = append(cols, k)
		}
	}
	return cols
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func tableData(recs []backend.Record) pterm.TableData {
	cols := columns(recs)
	data := pterm.TableData{cols}
	for _, r := range recs {
		row := make([]string, len(cols))
		for i, k := range cols {
			row[i] = cell(r[k])
		}
		data = append(data, row)
	}
	return data
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers: print integers without a decimal point.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
