package formatter

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"InventoryDump/internal/model"
	"InventoryDump/internal/thelper"
	"InventoryDump/pkg/json"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
}

func makeDump(name string, rows int, jsonData func(i int) interface{}) *model.TableDump {
	info := model.NewTableInfo(name)
	info.AddColumn("id", "INTEGER")
	info.AddColumn("json_data", "TEXT")
	info.RowCount = int64(rows)

	data := make([]*model.Row, 0, rows)
	for i := 0; i < rows; i++ {
		row := model.NewRow(2)
		row.Set("id", int64(i+1))
		row.Set("json_data", model.DecodeJSONField(jsonData(i)))
		data = append(data, row)
	}
	return &model.TableDump{Info: info, Data: data}
}

func vmJSON(i int) interface{} {
	return fmt.Sprintf(`{"name":"vm%d","id":"%d","location":"eastus","tags":{"env":"prod"}}`, i+1, 100+i)
}

func sampleResult() *model.DumpResult {
	res := model.NewDumpResult()
	res.Add(makeDump("virtualMachines", 8, vmJSON))
	res.Add(makeDump("emptyTable", 0, nil))
	res.Add(makeDump("rawRecords", 2, func(i int) interface{} {
		if i == 0 {
			return "not json at all"
		}
		return nil
	}))
	return res
}

func TestNew(t *testing.T) {
	if _, err := New(FormatJSON, Options{}); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := New(FormatTable, Options{}); err != nil {
		t.Errorf("table: %v", err)
	}
	if _, err := New("xml", Options{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTableFormatter_Header(t *testing.T) {
	out, err := NewTableFormatter(Options{DatabasePath: "/data/inv.db", Now: fixedNow}).Format(sampleResult())
	thelper.AssertNoError(t, err)

	lines := strings.Split(out, "\n")
	thelper.AssertString(t, "title", "Azure Objects Database Dump", lines[0])
	thelper.AssertString(t, "generated", "Generated: Sun Oct 18 09:30:00 UTC 2026", lines[1])
	thelper.AssertString(t, "database", "Database: /data/inv.db", lines[2])
	thelper.AssertString(t, "tables found", "Tables found: 3", lines[3])
	thelper.AssertString(t, "blank before banner", "", lines[4])
	thelper.AssertString(t, "separator", strings.Repeat("=", 60), lines[5])
	thelper.AssertString(t, "banner", "TABLE: VIRTUALMACHINES", lines[6])
}

func TestTableFormatter_TruncatesAfterFiveRecords(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("virtualMachines", 8, vmJSON))
	out, err := NewTableFormatter(Options{Now: fixedNow}).Format(res)
	thelper.AssertNoError(t, err)

	thelper.AssertInt(t, "rendered records", 5, strings.Count(out, "--- Record "))
	thelper.AssertContains(t, "fifth record", out, "--- Record 5 ---")
	thelper.AssertNotContains(t, "sixth record", out, "--- Record 6 ---")
	thelper.AssertContains(t, "remaining summary", out, "... and 3 more records")
	thelper.AssertContains(t, "columns", out, "Columns: id, json_data")
}

func TestTableFormatter_ExactlyFiveRecordsHasNoSummary(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("virtualMachines", 5, vmJSON))
	out, _ := NewTableFormatter(Options{Now: fixedNow}).Format(res)
	thelper.AssertInt(t, "rendered records", 5, strings.Count(out, "--- Record "))
	thelper.AssertNotContains(t, "remaining summary", out, "more records")
}

func TestTableFormatter_MaxRecordsOption(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("virtualMachines", 8, vmJSON))
	out, _ := NewTableFormatter(Options{MaxRecords: 2, Now: fixedNow}).Format(res)
	thelper.AssertInt(t, "rendered records", 2, strings.Count(out, "--- Record "))
	thelper.AssertContains(t, "remaining summary", out, "... and 6 more records")
}

func TestTableFormatter_EmptyTable(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("emptyTable", 0, nil))
	out, _ := NewTableFormatter(Options{Now: fixedNow}).Format(res)

	thelper.AssertContains(t, "records line", out, "Records: 0")
	thelper.AssertContains(t, "no data line", out, "\nNo data found.")
	thelper.AssertNotContains(t, "columns", out, "Columns:")
	thelper.AssertNotContains(t, "records", out, "--- Record")
}

func TestTableFormatter_JSONDataSummary(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("virtualMachines", 1, func(int) interface{} {
		return `{"name":"vm1","id":"123","location":"eastus"}`
	}))
	out, _ := NewTableFormatter(Options{Now: fixedNow}).Format(res)

	expected := strings.Join([]string{
		"--- Record 1 ---",
		"  id: 1",
		"  json_data: [JSON Object with 3 keys]",
		"    name: vm1",
		"    id: 123",
		"    location: eastus",
		"",
	}, "\n")
	thelper.AssertContains(t, "record block", out, expected)
}

func TestTableFormatter_JSONDataPartialKeys(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("subnets", 1, func(int) interface{} {
		return `{"location":"westus","properties":{"addressPrefix":"10.0.0.0/24"}}`
	}))
	out, _ := NewTableFormatter(Options{Now: fixedNow}).Format(res)

	thelper.AssertContains(t, "key count", out, "  json_data: [JSON Object with 2 keys]\n    location: westus\n")
	thelper.AssertNotContains(t, "name", out, "    name:")
	thelper.AssertNotContains(t, "nested dump", out, "addressPrefix")
}

func TestTableFormatter_RawAndNullValues(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("rawRecords", 3, func(i int) interface{} {
		switch i {
		case 0:
			return "not json at all"
		case 1:
			return `[1,"two"]`
		default:
			return nil
		}
	}))
	out, _ := NewTableFormatter(Options{Now: fixedNow}).Format(res)

	thelper.AssertContains(t, "raw string", out, "  json_data: not json at all\n")
	thelper.AssertContains(t, "array", out, `  json_data: [1,"two"]`+"\n")
	thelper.AssertContains(t, "null", out, "  json_data: NULL\n")
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	res := sampleResult()
	out, err := NewJSONFormatter().Format(res)
	thelper.AssertNoError(t, err)

	var parsed map[string]struct {
		Info struct {
			Name    string `json:"name"`
			Columns []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"columns"`
			RowCount int64 `json:"row_count"`
		} `json:"info"`
		Data []map[string]interface{} `json:"data"`
	}
	thelper.AssertNoError(t, json.Unmarshal([]byte(out), &parsed))

	thelper.AssertInt(t, "tables", res.Len(), len(parsed))
	for _, name := range res.Tables() {
		dump, _ := res.Get(name)
		got, ok := parsed[name]
		if !ok {
			t.Fatalf("table %s missing from output", name)
		}
		if got.Info.RowCount != dump.Info.RowCount {
			t.Errorf("%s: row_count %d, expected %d", name, got.Info.RowCount, dump.Info.RowCount)
		}
		thelper.AssertInt(t, name+" data length", len(dump.Data), len(got.Data))
		for i, c := range dump.Info.Columns {
			thelper.AssertString(t, name+" column", c.Name, got.Info.Columns[i].Name)
		}
	}

	vm := parsed["virtualMachines"].Data[0]["json_data"].(map[string]interface{})
	thelper.AssertString(t, "nested name", "vm1", vm["name"].(string))
	thelper.AssertString(t, "nested location", "eastus", vm["location"].(string))
	if _, ok := vm["tags"].(map[string]interface{}); !ok {
		t.Errorf("expected nested tags object, got %#v", vm["tags"])
	}

	raw := parsed["rawRecords"].Data
	thelper.AssertString(t, "raw string kept", "not json at all", raw[0]["json_data"].(string))
	if raw[1]["json_data"] != nil {
		t.Errorf("expected null json_data, got %#v", raw[1]["json_data"])
	}
}

func TestJSONFormatter_OrderAndIndent(t *testing.T) {
	out, err := NewJSONFormatter().Format(sampleResult())
	thelper.AssertNoError(t, err)

	if !strings.HasPrefix(out, "{\n  \"virtualMachines\": {\n    \"info\": {\n      \"name\": \"virtualMachines\",") {
		t.Errorf("unexpected layout:\n%s", out[:120])
	}
	first := strings.Index(out, `"virtualMachines"`)
	second := strings.Index(out, `"emptyTable"`)
	third := strings.Index(out, `"rawRecords"`)
	if !(first < second && second < third) {
		t.Errorf("tables out of order: %d %d %d", first, second, third)
	}
	idPos := strings.Index(out, `"id": 1`)
	dataPos := strings.Index(out, `"json_data": {`)
	if idPos < 0 || dataPos < 0 || idPos > dataPos {
		t.Errorf("row columns out of order")
	}
}

func TestJSONFormatter_StringifiesUnsupportedValues(t *testing.T) {
	info := model.NewTableInfo("misc")
	info.AddColumn("blob", "BLOB")
	info.AddColumn("ratio", "REAL")
	info.AddColumn("seen", "DATETIME")
	info.RowCount = 1
	row := model.NewRow(3)
	row.Set("blob", []byte("abc"))
	row.Set("ratio", math.NaN())
	row.Set("seen", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	res := model.NewDumpResult()
	res.Add(&model.TableDump{Info: info, Data: []*model.Row{row}})

	out, err := NewJSONFormatter().Format(res)
	thelper.AssertNoError(t, err)
	thelper.AssertContains(t, "blob", out, `"blob": "abc"`)
	thelper.AssertContains(t, "nan", out, `"ratio": "NaN"`)
	thelper.AssertContains(t, "time", out, `"seen": "2024-01-02T03:04:05Z"`)
}

func TestJSONFormatter_LargeIntegerPreserved(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("subscriptions", 1, func(int) interface{} {
		return `{"quota":12345678901234567890}`
	}))
	out, err := NewJSONFormatter().Format(res)
	thelper.AssertNoError(t, err)
	thelper.AssertContains(t, "big number", out, `"quota": 12345678901234567890`)
}

func TestJSONFormatter_MalformedNumbersKeepRawValue(t *testing.T) {
	inputs := []string{"-", "01", `{"count":-}`, "[1.]"}
	res := model.NewDumpResult()
	res.Add(makeDump("placeholders", len(inputs), func(i int) interface{} {
		return inputs[i]
	}))

	out, err := NewJSONFormatter().Format(res)
	thelper.AssertNoError(t, err)

	var parsed map[string]struct {
		Data []map[string]interface{} `json:"data"`
	}
	thelper.AssertNoError(t, json.Unmarshal([]byte(out), &parsed))
	for i, in := range inputs {
		got, ok := parsed["placeholders"].Data[i]["json_data"].(string)
		if !ok || got != in {
			t.Errorf("row %d: expected raw string %q, got %#v", i, in, parsed["placeholders"].Data[i]["json_data"])
		}
	}
}

func TestJSONFormatter_NestedKeysKeepDocumentOrder(t *testing.T) {
	res := model.NewDumpResult()
	res.Add(makeDump("virtualMachines", 1, func(int) interface{} {
		return `{"zeta":1,"alpha":{"y":2,"x":1}}`
	}))
	out, err := NewJSONFormatter().Format(res)
	thelper.AssertNoError(t, err)

	zeta := strings.Index(out, `"zeta"`)
	alpha := strings.Index(out, `"alpha"`)
	y := strings.Index(out, `"y"`)
	x := strings.Index(out, `"x"`)
	if !(zeta < alpha && y < x) {
		t.Errorf("nested keys reordered:\n%s", out)
	}
}
