package formatter

import (
	"bytes"

	"InventoryDump/internal/model"
	"InventoryDump/pkg/json"
)

// JSONFormatter 输出带缩进的完整JSON
type JSONFormatter struct {
	indent string
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{indent: "  "}
}

// Format {表名: {info: TableInfo, data: [行]}}，表和列都保持原有顺序
func (f *JSONFormatter) Format(res *model.DumpResult) (string, error) {
	doc := make(orderedObject, 0, res.Len())
	for _, name := range res.Tables() {
		dump, _ := res.Get(name)

		data := make([]orderedObject, 0, len(dump.Data))
		for _, row := range dump.Data {
			obj := make(orderedObject, 0, row.Len())
			for _, col := range row.Columns() {
				v, _ := row.Get(col)
				obj = append(obj, field{Key: col, Value: jsonSafe(v)})
			}
			data = append(data, obj)
		}

		doc = append(doc, field{Key: name, Value: orderedObject{
			{Key: "info", Value: dump.Info},
			{Key: "data", Value: data},
		}})
	}

	out, err := json.MarshalIndent(doc, "", f.indent)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type field struct {
	Key   string
	Value interface{}
}

// orderedObject 按插入顺序输出键的JSON对象
type orderedObject []field

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
