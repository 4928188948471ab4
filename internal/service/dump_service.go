package service

import (
	"context"
	"time"

	"InventoryDump/internal/model"
	"InventoryDump/internal/repository"

	"github.com/sirupsen/logrus"
)

type DumpService struct {
	repo repository.Repository
}

func NewDumpService(repo repository.Repository) *DumpService {
	return &DumpService{repo: repo}
}

// ResolveTables 返回要导出的表：全部表，或只包含 only 指定的表
func (s *DumpService) ResolveTables(ctx context.Context, only string) ([]string, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, model.ErrEmptySchema()
	}
	if only == "" {
		return tables, nil
	}

	for _, name := range tables {
		if name == only {
			return []string{only}, nil
		}
	}
	return nil, model.ErrTableNotFound(only, tables)
}

// Collect 按给定顺序读取每张表的信息和数据
func (s *DumpService) Collect(ctx context.Context, tables []string) (*model.DumpResult, error) {
	result := model.NewDumpResult()
	for _, name := range tables {
		start := time.Now()

		info, err := s.repo.TableInfo(ctx, name)
		if err != nil {
			return nil, err
		}
		rows, err := s.repo.DumpTable(ctx, name)
		if err != nil {
			return nil, err
		}

		result.Add(&model.TableDump{Info: info, Data: rows})
		logrus.Debugf("Dumped table %s: %d rows in %v", name, len(rows), time.Since(start))
	}
	return result, nil
}

// Dump ResolveTables + Collect
func (s *DumpService) Dump(ctx context.Context, only string) (*model.DumpResult, error) {
	tables, err := s.ResolveTables(ctx, only)
	if err != nil {
		return nil, err
	}
	return s.Collect(ctx, tables)
}
