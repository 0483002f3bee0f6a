// Package configcmd 提供配置查看命令。
package configcmd

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command"
	"github.com/lwmacct/251220-go-pkg-kwsub/internal/config"
)

// New 创建配置命令
func New() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "查看配置",
		Commands: []*cli.Command{
			{
				Name:   "example",
				Usage:  "输出带注释的配置示例 (YAML)",
				Action: exampleAction,
			},
			{
				Name:   "show",
				Usage:  "输出合并后的生效配置 (YAML)",
				Action: showAction,
			},
		},
	}
}

func exampleAction(ctx context.Context, cmd *cli.Command) error {
	_, err := cmd.Root().Writer.Write(config.ExampleYAML(config.DefaultConfig()))
	return err
}

// showAction 输出 默认值 → 配置文件 → 环境变量 → flags 合并后的配置。
func showAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(*cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load effective config: %w", err)
	}
	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = cmd.Root().Writer.Write(data)
	return err
}
