package repository

import (
	"context"
	"fmt"

	"InventoryDump/internal/model"
)

const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// Repository 只读的库表访问接口
type Repository interface {
	// ListTables 按目录顺序返回所有表名
	ListTables(ctx context.Context) ([]string, error)
	// TableInfo 返回表的列定义和行数，name 必须来自 ListTables
	TableInfo(ctx context.Context, name string) (*model.TableInfo, error)
	// DumpTable 读取表中全部行，json_data 列会尝试解析为JSON
	DumpTable(ctx context.Context, name string) ([]*model.Row, error)
	Close() error
}

// Open 按驱动名打开只读仓库
func Open(driver, dbPath string) (Repository, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteRepository(dbPath)
	case DriverDuckDB:
		return NewDuckDBRepository(dbPath)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}
