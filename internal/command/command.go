// Package command 提供 kwsub 各子命令共用的 flags 和初始化逻辑。
package command

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251220-go-pkg-kwsub/internal/config"
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/diag"
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

// Defaults 默认配置 - 单一来源 (Single Source of Truth)
var Defaults = config.DefaultConfig()

var (
	// ErrNoTemplate 未提供模板
	ErrNoTemplate = errors.New("no template given")
	// ErrNoDatabase 未提供数据库
	ErrNoDatabase = errors.New("no database given")
)

// GlobalFlags 根命令上的全局 flags，子命令可直接读取。
// flag 对象持有解析状态，每次构造命令树都需要新的实例。
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    config.ConfigFlag,
			Aliases: []string{"c"},
			Usage:   "配置文件路径, - 表示从标准输入读取",
		},
		&cli.StringFlag{
			Name:  "log-verbosity",
			Value: Defaults.Log.Verbosity,
			Usage: "诊断级别: debug, info, warning, error, critical",
		},
	}
}

// DatabaseFlag 数据库文件 flag
func DatabaseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "render-database",
		Aliases: []string{"db", "d"},
		Value:   Defaults.Render.Database,
		Usage:   "数据库文件路径 (YAML/JSON), - 表示标准输入",
	}
}

// TemplateFlags 模板来源相关 flags
func TemplateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "render-templates",
			Aliases: []string{"t"},
			Usage:   "模板文件路径, 可重复; 位置参数同样视为模板文件",
		},
		&cli.StringFlag{
			Name:  "render-text",
			Value: Defaults.Render.Text,
			Usage: "内联模板文本, 设置后忽略模板文件",
		},
		&cli.StringFlag{
			Name:  "render-delimiter",
			Value: Defaults.Render.Delimiter,
			Usage: "占位符分隔符",
		},
	}
}

// Setup 加载配置并初始化诊断输出，每个子命令的 Action 开头调用一次。
func Setup(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd, version.GetAppRawName())
	if err != nil {
		return nil, err
	}

	v, err := cfg.Verbosity()
	if err != nil {
		return nil, fmt.Errorf("log.verbosity: %w", err)
	}
	diag.Init(v)

	// 位置参数追加为模板文件
	cfg.Render.Templates = append(cfg.Render.Templates, cmd.Args().Slice()...)
	slog.Debug("Config loaded", "verbosity", v, "templates", len(cfg.Render.Templates))

	return cfg, nil
}

// Template 一个待渲染的模板
type Template struct {
	Name string // 文件路径，内联模板为 "<inline>"
	Text string
}

// Templates 返回配置中的模板：内联文本优先，否则为模板文件路径（未读取）。
func Templates(cfg *config.Config) ([]Template, error) {
	if cfg.Render.Text != "" {
		return []Template{{Name: "<inline>", Text: cfg.Render.Text}}, nil
	}
	if len(cfg.Render.Templates) == 0 {
		return nil, ErrNoTemplate
	}

	out := make([]Template, 0, len(cfg.Render.Templates))
	for _, path := range cfg.Render.Templates {
		out = append(out, Template{Name: path})
	}

	return out, nil
}

// NewEngine 按配置创建引擎
func NewEngine(cfg *config.Config) (*kwsub.Engine, error) {
	e, err := kwsub.New(kwsub.WithDelimiter(cfg.Render.Delimiter))
	if err != nil {
		return nil, fmt.Errorf("render.delimiter %q: %w", cfg.Render.Delimiter, err)
	}

	return e, nil
}

// LoadDatabase 按配置加载数据库
func LoadDatabase(cfg *config.Config) (kwsub.Database, error) {
	if cfg.Render.Database == "" {
		return nil, ErrNoDatabase
	}
	db, err := kwsub.LoadDatabase(cfg.Render.Database)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded database", "path", cfg.Render.Database, "records", len(db))

	return db, nil
}
