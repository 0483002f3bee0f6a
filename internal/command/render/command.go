// Package render 提供模板渲染命令。
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lwmacct/251220-go-pkg-kwsub/internal/command"
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

// New 创建渲染命令
func New() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "按数据库渲染模板, 每个组合输出一行",
		ArgsUsage: "[template-file...]",
		Action:    action,
		Flags: append([]cli.Flag{
			command.DatabaseFlag(),
			&cli.StringFlag{
				Name:  "render-label",
				Value: command.Defaults.Render.Label,
				Usage: "诊断输出的类别标签",
			},
			&cli.StringFlag{
				Name:    "render-output",
				Aliases: []string{"o"},
				Value:   command.Defaults.Render.Output,
				Usage:   "输出文件路径, 为空时输出到标准输出",
			},
			&cli.IntFlag{
				Name:    "render-jobs",
				Aliases: []string{"j"},
				Value:   command.Defaults.Render.Jobs,
				Usage:   "并发渲染的模板文件数",
			},
		}, command.TemplateFlags()...),
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
	db, err := command.LoadDatabase(cfg)
	if err != nil {
		return err
	}

	results, err := Render(ctx, engine, db, templates, cfg.Render.Label, cfg.Render.Jobs)
	if err != nil {
		return err
	}

	if cfg.Render.Output == "" {
		return write(cmd.Root().Writer, results)
	}
	f, err := os.Create(cfg.Render.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	return writeClose(f, results)
}

// Render 渲染多个模板，最多 jobs 个并发，结果按模板顺序返回。
//
// Text 为空的模板从文件 Name 读取。
func Render(ctx context.Context, engine *kwsub.Engine, db kwsub.Database, templates []command.Template, label string, jobs int) ([][]string, error) {
	results := make([][]string, len(templates))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, tpl := range templates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			text := tpl.Text
			if text == "" {
				data, err := os.ReadFile(tpl.Name)
				if err != nil {
					return fmt.Errorf("read template: %w", err)
				}
				text = string(data)
			}

			results[i] = renderText(engine, db, text, label)
			slog.Debug("Rendered template", "template", tpl.Name, "lines", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// renderText 渲染一个模板文件的内容。
//
// 模板文件通常以换行结尾，该换行不属于模板本身；每个输出行由 write 补回换行。
func renderText(engine *kwsub.Engine, db kwsub.Database, text, label string) []string {
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
	}

	return engine.Substitute(db, text, label)
}

func write(w io.Writer, results [][]string) error {
	for _, lines := range results {
		if _, err := io.WriteString(w, kwsub.Join(lines)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

// writeClose 写入后关闭 wc。关闭失败 (例如最后一次刷盘失败) 同样返回错误。
func writeClose(wc io.WriteCloser, results [][]string) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return write(wc, results)
}
