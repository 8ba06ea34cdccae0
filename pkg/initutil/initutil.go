package initutil

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/logutil"
	"avl_tool/pkg/seed"
	"avl_tool/pkg/treeprinter"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile 没有指定 --config 时在当前目录找这个文件
const DefaultConfigFile = "avltool.yaml"

type LogConfig struct {
	File  string `yaml:"file"`  // stdout/stderr 或文件名
	Level string `yaml:"level"` // DEBUG/INFO/WARN/ERROR
}

type PrinterConfig struct {
	Style     int `yaml:"style"`     // 0 ascii, 1 unicode
	Direction int `yaml:"direction"` // 0 右子树在上, 1 左子树在上
}

type Config struct {
	Log       LogConfig     `yaml:"log"`
	SeedOrder string        `yaml:"seed_order"`
	Printer   PrinterConfig `yaml:"printer"`
	ShowDiff  bool          `yaml:"show_diff"`
}

var once sync.Once

func Default() Config {
	return Config{
		Log: LogConfig{
			File:  "avltool.log",
			Level: logutil.WARN.String(),
		},
		SeedOrder: string(avltree.OrderPre),
		Printer: PrinterConfig{
			Style:     int(treeprinter.Unicode),
			Direction: int(treeprinter.RightRootLeft),
		},
		ShowDiff: true,
	}
}

// Load 读取配置文件，文件不存在时返回默认配置
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError,
			fmt.Sprintf("无法读取配置文件 %s", path), err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError,
			fmt.Sprintf("配置文件 %s 无效", path), err)
	}
	return cfg, nil
}

// Parse 在默认配置的基础上覆盖文件里写了的字段
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errorutil.NewExitError(errorutil.CodeConfigError, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c Config) Validate() error {
	if _, err := logutil.ParseLogLevel(c.Log.Level); err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError, "log.level", err)
	}
	if _, err := c.Order(); err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError, "seed_order", err)
	}
	if c.Printer.Style != int(treeprinter.ASCII) && c.Printer.Style != int(treeprinter.Unicode) {
		return errorutil.Newf(errorutil.CodeConfigError, "printer.style 只能是 0 或 1，实际是 %d", c.Printer.Style)
	}
	if c.Printer.Direction != int(treeprinter.RightRootLeft) && c.Printer.Direction != int(treeprinter.LeftRootRight) {
		return errorutil.Newf(errorutil.CodeConfigError, "printer.direction 只能是 0 或 1，实际是 %d", c.Printer.Direction)
	}
	return nil
}

func (c Config) LogLevel() logutil.Level {
	level, err := logutil.ParseLogLevel(c.Log.Level)
	if err != nil {
		return logutil.WARN
	}
	return level
}

// Order 把普通二叉树灌进 AVL 树时的取值顺序
func (c Config) Order() (avltree.Order, error) {
	order, err := avltree.ParseOrder(c.SeedOrder)
	if err != nil {
		return "", err
	}
	for _, o := range seed.Orders() {
		if o == order {
			return order, nil
		}
	}
	return "", errorutil.Newf(errorutil.CodeConfigError,
		"seed_order 只能是 preorder 或 levelorder，实际是 %q", c.SeedOrder)
}

func (c Config) Style() treeprinter.Style {
	return treeprinter.Style(c.Printer.Style)
}

func (c Config) Direction() treeprinter.Direction {
	return treeprinter.Direction(c.Printer.Direction)
}

// Marshal 输出 YAML，config 子命令用来查看最终生效的配置
func (c Config) Marshal() (string, error) {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	return string(data), nil
}

// InitSystem 按配置初始化日志，只执行一次
func InitSystem(cfg Config) error {
	var initErr error
	once.Do(func() {
		if err := logutil.InitLogger(cfg.Log.File, cfg.LogLevel()); err != nil {
			initErr = errorutil.NewExitError(errorutil.CodeIOError, err)
			return
		}
		logutil.Info("config struct:\n%+v", cfg)
	})
	return initErr
}
