package model

import (
	"InventoryDump/pkg/json"
)

// JSONDataColumn 存放资源JSON文档的列名
const JSONDataColumn = "json_data"

// Column 列信息
type Column struct {
	Name string `json:"name"` // 列名
	Type string `json:"type"` // 声明类型
}

// TableInfo 表信息：列定义与行数
type TableInfo struct {
	Name     string   `json:"name"`      // 表名
	Columns  []Column `json:"columns"`   // 列（按定义顺序）
	RowCount int64    `json:"row_count"` // 行数
}

// NewTableInfo 创建表信息
func NewTableInfo(name string) *TableInfo {
	return &TableInfo{
		Name:    name,
		Columns: make([]Column, 0),
	}
}

// AddColumn 追加列
func (t *TableInfo) AddColumn(name, typ string) {
	t.Columns = append(t.Columns, Column{Name: name, Type: typ})
}

// ColumnNames 返回列名列表
func (t *TableInfo) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// JSONField json_data列的值：解码成功时为结构化数据，否则保留原始值
type JSONField struct {
	Raw        interface{}     // 驱动返回的原始值，可能为nil
	Structured interface{}     // 解码后的object/array/scalar
	Source     json.RawMessage // 紧凑的原文，保留文档中的键顺序
	Decoded    bool
}

// DecodeJSONField 尝试把原始值解析为JSON。
// 只有非空的文本值会被尝试解析，失败时保留原始值。
func DecodeJSONField(raw interface{}) *JSONField {
	f := &JSONField{Raw: raw}

	var text []byte
	switch v := raw.(type) {
	case string:
		text = []byte(v)
	case []byte:
		text = v
	default:
		return f
	}
	if len(text) == 0 {
		return f
	}

	structured, source, err := json.Decode(text)
	if err != nil {
		return f
	}
	f.Structured = structured
	f.Source = source
	f.Decoded = true
	return f
}

// Value 返回输出时应使用的值
func (f *JSONField) Value() interface{} {
	if f.Decoded {
		return f.Structured
	}
	return f.Raw
}

// Object 解码结果为JSON对象时返回该对象
func (f *JSONField) Object() (map[string]interface{}, bool) {
	if !f.Decoded {
		return nil, false
	}
	obj, ok := f.Structured.(map[string]interface{})
	return obj, ok
}

// Row 一行数据，保持列顺序
type Row struct {
	columns []string
	values  map[string]interface{}
}

// NewRow 创建行
func NewRow(capacity int) *Row {
	return &Row{
		columns: make([]string, 0, capacity),
		values:  make(map[string]interface{}, capacity),
	}
}

// Set 设置列值，重复列名覆盖原值但保留原位置
func (r *Row) Set(column string, value interface{}) {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get 获取列值
func (r *Row) Get(column string) (interface{}, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns 返回列名（按结果集顺序）
func (r *Row) Columns() []string {
	return r.columns
}

// Len 返回列数
func (r *Row) Len() int {
	return len(r.columns)
}

// TableDump 单表导出结果
type TableDump struct {
	Info *TableInfo `json:"info"`
	Data []*Row     `json:"data"`
}

// DumpResult 全部导出结果，按表的加入顺序输出
type DumpResult struct {
	tables []string
	dumps  map[string]*TableDump
}

// NewDumpResult 创建导出结果
func NewDumpResult() *DumpResult {
	return &DumpResult{
		tables: make([]string, 0),
		dumps:  make(map[string]*TableDump),
	}
}

// Add 添加单表结果
func (d *DumpResult) Add(dump *TableDump) {
	name := dump.Info.Name
	if _, exists := d.dumps[name]; !exists {
		d.tables = append(d.tables, name)
	}
	d.dumps[name] = dump
}

// Get 获取单表结果
func (d *DumpResult) Get(name string) (*TableDump, bool) {
	dump, ok := d.dumps[name]
	return dump, ok
}

// Tables 返回表名（按加入顺序）
func (d *DumpResult) Tables() []string {
	return d.tables
}

// Len 返回表数量
func (d *DumpResult) Len() int {
	return len(d.tables)
}

// TotalRecords 所有表的记录总数
func (d *DumpResult) TotalRecords() int64 {
	var total int64
	for _, dump := range d.dumps {
		total += dump.Info.RowCount
	}
	return total
}
