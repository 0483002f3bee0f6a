// Package tmpl 在加载配置文件前展开其中的环境变量引用。
//
// 语法与 Taskfile 对齐，例如：
//
//	render:
//	  label: '{{env "KWSUB_LABEL" "report"}}'
//	  database: '{{.HOME}}/inventory.yaml'
//
// 关键字占位符 (@@path@@) 不是模板语法，原样保留，由渲染阶段处理。
//
// # 支持的函数
//
//   - env: {{env "VAR"}} 或 {{env "VAR" "默认值"}}
//   - default: {{.VAR | default "fallback"}}
//   - coalesce: {{coalesce .VAR1 .VAR2 "default"}}
//
// 未设置的变量展开为空字符串，不会输出 "<no value>"。
package tmpl
