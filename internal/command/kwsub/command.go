// Package kwsub 提供 kwsub 根命令。
package kwsub

import (
	"context"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command"
	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command/configcmd"
	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command/render"
	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command/scan"
)

// Command 根命令
var Command = New()

// New 创建根命令。测试中每次运行都应使用新的命令树。
func New() *cli.Command {
	return &cli.Command{
		Name:   "kwsub",
		Usage:  "关键字替换: 按层级数据库展开 @@path@@ 占位符",
		Flags:  command.GlobalFlags(),
		Action: action,
		Commands: []*cli.Command{
			render.New(),
			scan.New(),
			configcmd.New(),
			version.Command,
		},
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	// 默认行为：显示帮助
	return cli.ShowAppHelp(cmd)
}
