package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Compare CompareConfig `toml:"compare"`
	Export  ExportConfig  `toml:"export"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// CompareConfig 比较配置
type CompareConfig struct {
	// KeyColumns 默认键列；请求未指定键列时使用
	KeyColumns []string `toml:"key_columns"`
	// Columns 比较字段清单；为空时使用内置的采购订单字段清单
	Columns []string `toml:"columns"`
	// IncludeUnchanged 交叉表是否包含无差异行
	IncludeUnchanged bool `toml:"include_unchanged"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	// Layout 比较字段的导出布局：split（两列）或 merged（单列 "v1 <> v2"）
	Layout string `toml:"layout"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultKeyColumn 默认键列
const DefaultKeyColumn = "Purchasing document number"

// DefaultCompareColumns 内置比较字段清单：采购订单核对用到的全部字段。
// 只有同时出现在两份文件中的清单字段才会被比较。
var DefaultCompareColumns = []string{
	"Purchasing document number",
	"0GN_VENDOR",
	"Purchasing Document Type",
	"Puchasing document category",
	"Source System for R/3 Entity",
	"Invoicing Party",
	"Logical System Backend",
	"Status of purchasing document",
	"Purchasing Organization",
	"Purchasing Group",
	"Source system ID",
	"Supplying Plant",
	"0VENDOR",
	"Purchase Document Date",
	"Date on which the purchasing document wa",
	"Fiscal year / period",
	"Fiscal year variant",
	"Fiscal year",
	"Posting Date in the Document",
	"Update Date",
	"Validity period end",
	"Validity Period Start",
	"Calendar Day Number",
	"Calender Week - Saturday",
	"Calender Week - Sunday",
	"Calendar Week Number",
	"Document Currency",
	"Purchase Order Currency",
	"Company Code",
	"Name of person who created the object",
	"Date on which the record was created",
	"Transaction for purchasing document",
	"Logical System",
	"Ordering address",
	"Vendor to whom partner roles are assigne",
	"Goods Supplier",
	"Supplying vendor",
	"Supplying plant to which partner roles h",
	"Released Date",
	"Released By",
	"PO release indicator",
	"PO release status",
	"Number of deliveries",
	"Exchange rate for pricing and statistics",
	"No. of invoices",
	"Counter for documents",
	"Re-Release Count",
	"Total value at the time of Release",
	// 源文件表头偶见重复拼接，保留该变体以便命中
	"Total value at the time of ReleaseTotal value at the time of Release",
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20271,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Compare: CompareConfig{
			KeyColumns:       []string{DefaultKeyColumn},
			Columns:          append([]string{}, DefaultCompareColumns...),
			IncludeUnchanged: false,
		},
		Export: ExportConfig{
			Layout: "split",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
// 配置文件位于可执行文件同目录下；不存在时使用默认配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("PO_COMPARE_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	// 清单与键列允许在 toml 中整体替换；清空等同于回退内置值
	if len(config.Compare.Columns) == 0 {
		config.Compare.Columns = append([]string{}, DefaultCompareColumns...)
	}
	if len(config.Compare.KeyColumns) == 0 {
		config.Compare.KeyColumns = []string{DefaultKeyColumn}
	}
	if config.Export.Layout != "merged" {
		config.Export.Layout = "split"
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录及其子目录存在
// 数据目录位于可执行文件同目录下
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	exeDir, _ := GetExeDir()
	if exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir, subdir, filename)
}
