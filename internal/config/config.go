package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KaramelBytes/iris-explorer/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath          string `mapstructure:"data_path" yaml:"data_path"`
	DatasetName       string `mapstructure:"dataset_name" yaml:"dataset_name"`
	LabelColumn       string `mapstructure:"label_column" yaml:"label_column"`
	PetalLengthColumn string `mapstructure:"petal_length_column" yaml:"petal_length_column"`
	SepalLengthColumn string `mapstructure:"sepal_length_column" yaml:"sepal_length_column"`
	// XLSX inputs only
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	HeadRows int `mapstructure:"head_rows" yaml:"head_rows"`
	HistBins int `mapstructure:"hist_bins" yaml:"hist_bins"`

	// Chart output
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	OpenCharts bool   `mapstructure:"open_charts" yaml:"open_charts"`

	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// Dir returns ~/.iris-explorer.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".iris-explorer"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.iris-explorer/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("IRISX")
	v.AutomaticEnv()

	v.SetDefault("data_path", "iris_dataset.csv")
	v.SetDefault("dataset_name", "Iris")
	v.SetDefault("label_column", "target")
	v.SetDefault("petal_length_column", "petal length (cm)")
	v.SetDefault("sepal_length_column", "sepal length (cm)")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("head_rows", 5)
	v.SetDefault("hist_bins", 20)
	v.SetDefault("output_dir", filepath.Join(os.TempDir(), "iris-explorer"))
	v.SetDefault("open_charts", true)
	v.SetDefault("debug", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns a single key by its config file name.
func (c *Global) Set(key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "dataset_name":
		c.DatasetName = val
	case "label_column":
		c.LabelColumn = val
	case "petal_length_column":
		c.PetalLengthColumn = val
	case "sepal_length_column":
		c.SepalLengthColumn = val
	case "sheet_name":
		c.SheetName = val
	case "sheet_index", "head_rows", "hist_bins":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		switch key {
		case "sheet_index":
			c.SheetIndex = i
		case "head_rows":
			c.HeadRows = i
		default:
			c.HistBins = i
		}
	case "output_dir":
		c.OutputDir = val
	case "open_charts", "debug":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		if key == "debug" {
			c.Debug = b
		} else {
			c.OpenCharts = b
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
