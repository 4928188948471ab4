package repository

import (
	"context"
	"database/sql"
	"strings"

	"InventoryDump/internal/model"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, err
	}

	// 单连接，PRAGMA 才能对后续查询生效
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, err
	}

	logrus.Debugf("SQLite repository opened: %s", dbPath)
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ListTables 查询 sqlite_master 中的所有表
func (r *SQLiteRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
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
func (r *SQLiteRepository) TableInfo(ctx context.Context, name string) (*model.TableInfo, error) {
	info := model.NewTableInfo(name)
	if err := r.readColumns(ctx, info); err != nil {
		return nil, err
	}

	// 表不存在时 PRAGMA 返回空结果，由 COUNT 报错
	count, err := countRows(ctx, r.db, name, "SELECT COUNT(*) FROM "+quoteIdent(name))
	if err != nil {
		return nil, err
	}
	info.RowCount = count
	return info, nil
}

func (r *SQLiteRepository) readColumns(ctx context.Context, info *model.TableInfo) error {
	crow, err := r.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(info.Name)+")")
	if err != nil {
		return model.ErrQuery(err, "table_info %s", info.Name)
	}
	defer crow.Close()

	for crow.Next() {
		var cid, notnull, pk int
		var colName, ctype string
		var dflt sql.NullString
		if err := crow.Scan(&cid, &colName, &ctype, &notnull, &dflt, &pk); err != nil {
			return model.ErrQuery(err, "scan table_info %s", info.Name)
		}
		info.AddColumn(colName, ctype)
	}
	if err := crow.Err(); err != nil {
		return model.ErrQuery(err, "table_info %s", info.Name)
	}
	return nil
}

// DumpTable 读取全部数据，无分页
func (r *SQLiteRepository) DumpTable(ctx context.Context, name string) ([]*model.Row, error) {
	return queryRows(ctx, r.db, name, "SELECT * FROM "+quoteIdent(name))
}

// quoteIdent 表名无法参数化，只做双引号转义
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
