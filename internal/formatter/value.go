package formatter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"InventoryDump/internal/model"
	"InventoryDump/pkg/json"
)

// jsonSafe 把驱动返回的值转换为可以序列化的值，无法直接序列化的转为字符串
func jsonSafe(v interface{}) interface{} {
	switch x := v.(type) {
	case nil, bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return x
	case float32:
		return safeFloat(float64(x))
	case float64:
		return safeFloat(x)
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case *model.JSONField:
		if x.Decoded {
			return x.Source
		}
		return jsonSafe(x.Raw)
	case map[string]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, val := range x {
			m[k] = jsonSafe(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(x))
		for i, val := range x {
			s[i] = jsonSafe(val)
		}
		return s
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func safeFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

// renderValue 表格模式下单个值的文本形式
func renderValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case json.Number:
		return x.String()
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case *model.JSONField:
		if !x.Decoded {
			return renderValue(x.Raw)
		}
		switch x.Structured.(type) {
		case map[string]interface{}, []interface{}:
			return string(x.Source)
		}
		return renderValue(x.Structured)
	case map[string]interface{}, []interface{}:
		s, err := json.MarshalToString(jsonSafe(x))
		if err != nil {
			return fmt.Sprint(x)
		}
		return s
	default:
		return fmt.Sprint(x)
	}
}
