package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port <= 0 {
		t.Fatalf("default port = %d, want positive", cfg.Server.Port)
	}
	if got, want := len(cfg.Compare.KeyColumns), 1; got != want {
		t.Fatalf("default key columns = %d, want %d", got, want)
	}
	if cfg.Compare.KeyColumns[0] != DefaultKeyColumn {
		t.Fatalf("default key column = %q, want %q", cfg.Compare.KeyColumns[0], DefaultKeyColumn)
	}
	if len(cfg.Compare.Columns) != len(DefaultCompareColumns) {
		t.Fatalf("default compare columns = %d, want %d",
			len(cfg.Compare.Columns), len(DefaultCompareColumns))
	}
	if cfg.Export.Layout != "split" {
		t.Fatalf("default export layout = %q, want split", cfg.Export.Layout)
	}
}

func TestDefaultCompareColumns_KeyIncluded(t *testing.T) {
	// 键列本身也在比较清单内：键值一致不计差异，但占一个比较单元格
	found := false
	for _, col := range DefaultCompareColumns {
		if col == DefaultKeyColumn {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("compare columns do not include key column %q", DefaultKeyColumn)
	}
}

func TestDefaultConfig_RegistryIsCopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compare.Columns[0] = "mutated"
	if DefaultCompareColumns[0] == "mutated" {
		t.Fatal("DefaultConfig shares backing array with DefaultCompareColumns")
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want bool
	}{
		{"specified", "[server]\nport = 9000\n", true},
		{"absent", "[server]\ndev_mode = true\n", false},
		{"no server section", "[data]\ndata_dir = \"data\"\n", false},
		{"invalid toml", "not toml at all [", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPortSpecifiedInToml([]byte(tt.toml)); got != tt.want {
				t.Fatalf("isPortSpecifiedInToml = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compare.KeyColumns = []string{"Purchasing Organization", "Purchasing document number"}
	cfg.Export.Layout = "merged"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	var loaded AppConfig
	if err := toml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}

	if len(loaded.Compare.KeyColumns) != 2 {
		t.Fatalf("key columns after round trip = %v", loaded.Compare.KeyColumns)
	}
	if loaded.Export.Layout != "merged" {
		t.Fatalf("layout after round trip = %q, want merged", loaded.Export.Layout)
	}
}
