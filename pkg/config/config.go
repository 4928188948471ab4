package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDatabasePath 扫描程序写入的默认数据库位置
	DefaultDatabasePath = "/opt/CPvsec-R82/scripts/azure/cloudguard_controller"
	// DefaultConfigPath 扫描程序的配置文件位置
	DefaultConfigPath = "/opt/CPvsec-R82/scripts/azure/vsec.ini"
	// DefaultMaxRecords 表格模式每张表最多展示的记录数
	DefaultMaxRecords = 5
)

// Config 应用配置
type Config struct {
	Database DatabaseConfig `ini:"database" yaml:"database"`
	Output   OutputConfig   `ini:"output" yaml:"output"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path   string `ini:"path" yaml:"path"`     // 数据库文件路径
	Driver string `ini:"driver" yaml:"driver"` // sqlite/duckdb，为空时按扩展名判断
}

// OutputConfig 输出配置
type OutputConfig struct {
	Format     string `ini:"format" yaml:"format"`           // json/table
	MaxRecords int    `ini:"max_records" yaml:"max_records"` // 表格模式展示的记录数
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Output:   OutputConfig{Format: "table", MaxRecords: DefaultMaxRecords},
	}
}

// LoadConfig 加载配置文件，.yaml/.yml 按yaml解析，其它按ini解析
func LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := ini.MapTo(cfg, filePath); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.fillDefaults()
	logrus.Debugf("Config loaded successfully from: %s", filePath)
	return cfg, nil
}

// Locate 读取配置文件，不可用时静默回退到默认配置
func Locate(filePath string) *Config {
	cfg, err := LoadConfig(filePath)
	if err != nil {
		logrus.Debugf("Config provider unavailable, using defaults: %v", err)
		return Default()
	}
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
	if c.Output.MaxRecords <= 0 {
		c.Output.MaxRecords = DefaultMaxRecords
	}
}

// DriverFor 返回访问 dbPath 使用的驱动
func (c *Config) DriverFor(dbPath string) string {
	if c.Database.Driver != "" {
		return strings.ToLower(c.Database.Driver)
	}
	switch strings.ToLower(filepath.Ext(dbPath)) {
	case ".duckdb", ".ddb":
		return "duckdb"
	default:
		return "sqlite"
	}
}
