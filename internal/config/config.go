// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithConfigPaths 选项或 --config flag 设置
//  3. 环境变量 - 通过 WithEnvPrefix 选项启用，默认前缀 KWSUB_
//  4. CLI flags - 仅用户明确指定的 flag 生效
package config

import (
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/diag"
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "KWSUB_"

// Config 应用配置
type Config struct {
	Render RenderConfig `koanf:"render" desc:"渲染配置"`
	Log    LogConfig    `koanf:"log" desc:"日志配置"`
}

// RenderConfig 渲染配置
type RenderConfig struct {
	Database  string   `koanf:"database" desc:"数据库文件路径 (YAML/JSON), - 表示标准输入"`
	Templates []string `koanf:"templates" desc:"模板文件路径列表"`
	Text      string   `koanf:"text" desc:"内联模板文本, 设置后忽略 templates"`
	Delimiter string   `koanf:"delimiter" desc:"占位符分隔符"`
	Label     string   `koanf:"label" desc:"诊断输出的类别标签"`
	Output    string   `koanf:"output" desc:"输出文件路径, 为空时输出到标准输出"`
	Jobs      int      `koanf:"jobs" desc:"并发渲染的模板文件数"`
}

// LogConfig 日志配置
type LogConfig struct {
	Verbosity string `koanf:"verbosity" desc:"诊断级别: debug, info, warning, error, critical"`
}

// DefaultConfig 返回默认配置
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Templates: []string{},
			Delimiter: kwsub.DefaultDelimiter,
			Label:     "report",
			Jobs:      4,
		},
		Log: LogConfig{
			Verbosity: diag.DefaultVerbosity.String(),
		},
	}
}

// Verbosity 解析配置中的诊断级别
func (c *Config) Verbosity() (diag.Verbosity, error) {
	return diag.ParseVerbosity(c.Log.Verbosity)
}
