package sample

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"InventoryDump/pkg/json"

	"github.com/google/uuid"
)

// Options 样例库生成参数
type Options struct {
	Resources int   // 每种资源的数量
	Seed      int64 // 随机种子，0 表示按时间
	Broken    int   // 额外插入 json_data 不是合法JSON的记录数
}

// resourceTables 表名 -> Azure 资源类型
var resourceTables = []struct {
	table string
	kind  string
}{
	{"virtualMachines", "Microsoft.Compute/virtualMachines"},
	{"networkInterfaces", "Microsoft.Network/networkInterfaces"},
	{"resourceGroups", "Microsoft.Resources/resourceGroups"},
	{"storageAccounts", "Microsoft.Storage/storageAccounts"},
}

var locations = []string{"eastus", "westus2", "westeurope", "northeurope", "southeastasia"}

// Result 生成结果
type Result struct {
	Tables int
	Rows   int
	Seed   int64
}

// Generate 在 db 中创建资源表并写入样例数据。
// storageAccounts 保持为空，用于演示空表输出。
func Generate(db *sql.DB, opts Options) (*Result, error) {
	if opts.Resources <= 0 {
		opts.Resources = 10
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(opts.Seed))
	subscription := uuid.New().String()

	res := &Result{Seed: opts.Seed}
	for _, rt := range resourceTables {
		schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER,
			name TEXT,
			resource_group TEXT,
			json_data TEXT,
			updated_at BIGINT
		)`, rt.table)
		if _, err := db.Exec(schema); err != nil {
			return nil, fmt.Errorf("create table %s: %w", rt.table, err)
		}
		res.Tables++

		if rt.table == "storageAccounts" {
			continue
		}
		n, err := fill(db, rt.table, rt.kind, subscription, rnd, opts)
		if err != nil {
			return nil, err
		}
		res.Rows += n
	}
	return res, nil
}

func fill(db *sql.DB, table, kind, subscription string, rnd *rand.Rand, opts Options) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx failed: %w", err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s (id, name, resource_group, json_data, updated_at) VALUES (?, ?, ?, ?, ?)`, table))
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare failed: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	now := time.Now().Unix()
	for i := 0; i < opts.Resources+opts.Broken; i++ {
		name := fmt.Sprintf("%s-%03d", shortName(table), i+1)
		group := fmt.Sprintf("rg-%s", []string{"prod", "dev", "shared"}[rnd.Intn(3)])

		var payload string
		if i < opts.Resources {
			doc := map[string]interface{}{
				"name":     name,
				"id":       fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/%s/%s", subscription, group, kind, name),
				"location": locations[rnd.Intn(len(locations))],
				"type":     kind,
				"tags":     map[string]string{"env": group[3:], "owner": "cloudguard"},
			}
			b, err := json.Marshal(doc)
			if err != nil {
				tx.Rollback()
				return 0, err
			}
			payload = string(b)
		} else {
			payload = "<truncated export " + name + ">"
		}

		if _, err := stmt.Exec(i+1, name, group, payload, now-int64(rnd.Intn(86400))); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert failed: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit failed: %w", err)
	}
	return inserted, nil
}

func shortName(table string) string {
	switch table {
	case "virtualMachines":
		return "vm"
	case "networkInterfaces":
		return "nic"
	case "resourceGroups":
		return "rg"
	default:
		return "res"
	}
}
