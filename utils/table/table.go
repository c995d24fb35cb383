/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package table

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// minColumnWidth 最小列宽
const minColumnWidth = 4

// Write renders rows as a bordered text table.
// Columns follow fieldOrder; columns absent from fieldOrder come after it in alphabetical order.
func Write(w io.Writer, rows []map[string]interface{}, fieldOrder []string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	columns := Columns(rows, fieldOrder)
	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(len(col), minColumnWidth)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				cells[r][i] = cast.ToString(v)
			}
			widths[i] = max(widths[i], len(cells[r][i]))
		}
	}

	var sb strings.Builder
	border(&sb, widths)
	line(&sb, columns, widths)
	border(&sb, widths)
	for _, c := range cells {
		line(&sb, c, widths)
	}
	border(&sb, widths)
	fmt.Fprintf(&sb, "(%d rows)\n", len(rows))

	_, err := io.WriteString(w, sb.String())
	return err
}

// Columns returns the column order used by Write
func Columns(rows []map[string]interface{}, fieldOrder []string) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			seen[col] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for _, field := range fieldOrder {
		if seen[field] {
			columns = append(columns, field)
			delete(seen, field)
		}
	}
	rest := make([]string, 0, len(seen))
	for col := range seen {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

func border(sb *strings.Builder, widths []int) {
	sb.WriteByte('+')
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')
}

func line(sb *strings.Builder, values []string, widths []int) {
	sb.WriteByte('|')
	for i, v := range values {
		fmt.Fprintf(sb, " %-*s |", widths[i], v)
	}
	sb.WriteByte('\n')
}
