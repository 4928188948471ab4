package formatter

import (
	"fmt"
	"time"

	"InventoryDump/internal/model"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Formatter 把导出结果渲染为文本
type Formatter interface {
	Format(res *model.DumpResult) (string, error)
}

// Options 渲染选项
type Options struct {
	DatabasePath string           // 表格模式标题中显示的数据库路径
	MaxRecords   int              // 表格模式每张表展示的记录数，<=0 时为5
	Now          func() time.Time // 生成时间，测试时可替换
}

// New 按格式名创建 Formatter
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatTable, "":
		return NewTableFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (expected json or table)", format)
	}
}
