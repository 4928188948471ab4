package formatter

import (
	"fmt"
	"strings"
	"time"

	"InventoryDump/internal/model"
)

const separatorWidth = 60

// json_data 为对象时展示的关键字段，顺序固定
var jsonSummaryKeys = []string{"name", "id", "location"}

// TableFormatter 可读的表格摘要，每张表只展示前几条记录
type TableFormatter struct {
	databasePath string
	maxRecords   int
	now          func() time.Time
}

func NewTableFormatter(opts Options) *TableFormatter {
	f := &TableFormatter{
		databasePath: opts.DatabasePath,
		maxRecords:   opts.MaxRecords,
		now:          opts.Now,
	}
	if f.maxRecords <= 0 {
		f.maxRecords = 5
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

func (f *TableFormatter) Format(res *model.DumpResult) (string, error) {
	parts := []string{
		"Azure Objects Database Dump",
		"Generated: " + f.now().Format(time.UnixDate),
		"Database: " + f.databasePath,
		fmt.Sprintf("Tables found: %d", res.Len()),
	}
	for _, name := range res.Tables() {
		dump, _ := res.Get(name)
		parts = append(parts, f.formatTable(dump))
	}
	return strings.Join(parts, "\n"), nil
}

// formatTable 单张表的标题、列和前 maxRecords 条记录
func (f *TableFormatter) formatTable(dump *model.TableDump) string {
	sep := strings.Repeat("=", separatorWidth)
	lines := []string{
		"",
		sep,
		"TABLE: " + strings.ToUpper(dump.Info.Name),
		sep,
		fmt.Sprintf("Records: %d", dump.Info.RowCount),
	}

	if dump.Info.RowCount == 0 {
		lines = append(lines, "No data found.")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "Columns: "+strings.Join(dump.Info.ColumnNames(), ", "), "")

	shown := dump.Data
	if len(shown) > f.maxRecords {
		shown = shown[:f.maxRecords]
	}
	for i, row := range shown {
		lines = append(lines, fmt.Sprintf("--- Record %d ---", i+1))
		lines = append(lines, formatRecord(row)...)
		lines = append(lines, "")
	}

	if rest := len(dump.Data) - len(shown); rest > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more records", rest))
	}
	return strings.Join(lines, "\n")
}

func formatRecord(row *model.Row) []string {
	lines := make([]string, 0, row.Len())
	for _, col := range row.Columns() {
		v, _ := row.Get(col)
		if col == model.JSONDataColumn {
			if jf, ok := v.(*model.JSONField); ok {
				if obj, ok := jf.Object(); ok {
					lines = append(lines, fmt.Sprintf("  %s: [JSON Object with %d keys]", col, len(obj)))
					for _, key := range jsonSummaryKeys {
						if kv, ok := obj[key]; ok {
							lines = append(lines, fmt.Sprintf("    %s: %s", key, renderValue(kv)))
						}
					}
					continue
				}
			}
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", col, renderValue(v)))
	}
	return lines
}
