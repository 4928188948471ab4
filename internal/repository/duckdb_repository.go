package repository

import (
	"context"
	"database/sql"

	"InventoryDump/internal/model"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/sirupsen/logrus"
)

type DuckDBRepository struct {
	db *sql.DB
}

func NewDuckDBRepository(dbPath string) (*DuckDBRepository, error) {
	db, err := sql.Open("duckdb", dbPath+"?access_mode=read_only")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	logrus.Debugf("DuckDB repository opened: %s", dbPath)
	return &DuckDBRepository{db: db}, nil
}

func (r *DuckDBRepository) Close() error {
	return r.db.Close()
}

// ListTables 当前schema的用户表，按创建顺序
func (r *DuckDBRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT table_name
		FROM duckdb_tables()
		WHERE database_name = current_database()
		  AND schema_name = current_schema()
		  AND NOT internal AND NOT temporary
		ORDER BY table_oid
	`)
	if err != nil {
		return nil, model.ErrQuery(err, "list tables")
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, model.ErrQuery(err, "scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrQuery(err, "list tables")
	}
	return tables, nil
}

// TableInfo 列信息 + 行数
func (r *DuckDBRepository) TableInfo(ctx context.Context, name string) (*model.TableInfo, error) {
	info := model.NewTableInfo(name)
	if err := r.readColumns(ctx, info); err != nil {
		return nil, err
	}

	count, err := countRows(ctx, r.db, name, "SELECT COUNT(*) FROM "+quoteIdent(name))
	if err != nil {
		return nil, err
	}
	info.RowCount = count
	return info, nil
}

// readColumns 只有一个连接，rows 必须在 COUNT 之前关闭
func (r *DuckDBRepository) readColumns(ctx context.Context, info *model.TableInfo) error {
	crow, err := r.db.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ?
		ORDER BY ordinal_position
	`, info.Name)
	if err != nil {
		return model.ErrQuery(err, "columns of %s", info.Name)
	}
	defer crow.Close()

	for crow.Next() {
		var colName, dataType string
		if err := crow.Scan(&colName, &dataType); err != nil {
			return model.ErrQuery(err, "scan columns of %s", info.Name)
		}
		info.AddColumn(colName, dataType)
	}
	if err := crow.Err(); err != nil {
		return model.ErrQuery(err, "columns of %s", info.Name)
	}
	return nil
}

// DumpTable 读取全部数据，无分页
func (r *DuckDBRepository) DumpTable(ctx context.Context, name string) ([]*model.Row, error) {
	return queryRows(ctx, r.db, name, "SELECT * FROM "+quoteIdent(name))
}
