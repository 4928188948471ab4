package repository

import (
	"context"
	"database/sql"

	"InventoryDump/internal/model"
)

// queryRows 执行查询并把每一行转换为有序的 model.Row
func queryRows(ctx context.Context, db *sql.DB, table, query string) ([]*model.Row, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, model.ErrQuery(err, "select rows from %s", table)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, model.ErrQuery(err, "read columns of %s", table)
	}

	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	result := make([]*model.Row, 0)
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, model.ErrQuery(err, "scan row of %s", table)
		}
		row := model.NewRow(len(columns))
		for i, col := range columns {
			row.Set(col, convertValue(col, values[i]))
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrQuery(err, "iterate rows of %s", table)
	}
	return result, nil
}

// convertValue json_data 列转为 JSONField，其它列原样返回。
// Scan 复用同一组缓冲区，[]byte 需要拷贝。
func convertValue(column string, v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		c := make([]byte, len(b))
		copy(c, b)
		v = c
	}
	if column == model.JSONDataColumn {
		return model.DecodeJSONField(v)
	}
	return v
}

// countRows SELECT COUNT(*)
func countRows(ctx context.Context, db *sql.DB, table, query string) (int64, error) {
	var count int64
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, model.ErrQuery(err, "count rows of %s", table)
	}
	return count, nil
}
