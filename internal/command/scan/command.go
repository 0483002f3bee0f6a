// Package scan 提供模板占位符检查命令。
package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command"
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

// New 创建扫描命令
func New() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "列出模板中的占位符; 指定数据库时显示每个根记录的解析结果",
		ArgsUsage: "[template-file...]",
		Action:    action,
		Flags:     append([]cli.Flag{command.DatabaseFlag()}, command.TemplateFlags()...),
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	templates, err := command.Templates(cfg)
	if err != nil {
		return err
	}
	engine, err := command.NewEngine(cfg)
	if err != nil {
		return err
	}

	var db kwsub.Database
	if cfg.Render.Database != "" {
		if db, err = command.LoadDatabase(cfg); err != nil {
			return err
		}
	}

	w := cmd.Root().Writer
	for _, tpl := range templates {
		text := tpl.Text
		if text == "" {
			data, err := os.ReadFile(tpl.Name)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			text = string(data)
		}
		if len(templates) > 1 {
			_, _ = fmt.Fprintf(w, "# %s\n", tpl.Name)
		}
		if err := Report(w, engine.Scanner().Scan(text), db); err != nil {
			return err
		}
	}

	return nil
}

// Report 输出占位符列表，db 非空时追加每个根记录的解析结果。
func Report(w io.Writer, tpl kwsub.Template, db kwsub.Database) error {
	counts := make(map[string]int, len(tpl.Placeholders))
	for _, p := range tpl.Placeholders {
		counts[p.Text]++
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tOCCURRENCES")
	for _, p := range tpl.Paths() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", p.Path, counts[p.Text])
	}

	for i, record := range db {
		_, _ = fmt.Fprintf(tw, "\nrecord %d\t\n", i)
		for _, p := range tpl.Paths() {
			values, ok := kwsub.Resolve(record, p.Path)
			if !ok {
				_, _ = fmt.Fprintf(tw, "  %s\tunresolved\n", p.Path)
				continue
			}
			_, _ = fmt.Fprintf(tw, "  %s\t%d value(s)\n", p.Path, len(values))
		}
		if lines, ok := kwsub.LineCount(record, tpl); ok {
			_, _ = fmt.Fprintf(tw, "  lines\t%d\n", lines)
		} else {
			_, _ = fmt.Fprintln(tw, "  lines\toverflow")
		}
	}

	return tw.Flush()
}
