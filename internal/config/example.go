package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"
)

// exampleTemplates 作为注释写在 render.templates 上方的样例条目
var exampleTemplates = []string{"templates/hosts.tpl", "templates/ports.tpl"}

// exampleWalkthrough 追加在示例末尾：一份数据库、一个模板和渲染结果。
var exampleWalkthrough = []string{
	"数据库 (inventory.yaml):",
	"  - name: web1",
	"    ports: [{id: \"80\"}, {id: \"443\"}]",
	"  - name: db1",
	"    ports: [{id: \"5432\"}]",
	"",
	"模板 (templates/ports.tpl):",
	"  @@name@@ listens on @@ports.id@@",
	"",
	"kwsub render -d inventory.yaml templates/ports.tpl 的输出:",
	"  web1 listens on 80",
	"  web1 listens on 443",
	"  db1 listens on 5432",
}

// ExampleYAML 生成 `kwsub config example` 输出的带注释配置。
//
// 每个键的注释取自 desc tag，并标出可覆盖它的环境变量；
// render.templates 附带注释掉的样例条目，文件末尾附一段渲染示例。
// 输出可以直接作为配置文件加载，结果与 cfg 相同。
func ExampleYAML(cfg Config) []byte {
	keys := collectKoanfKeys(reflect.TypeOf(cfg), "")
	envNames := make(map[string]string, len(keys))
	for name, key := range generateEnvBindings(EnvPrefix, keys) {
		envNames[key] = name
	}

	root := sectionNode(reflect.ValueOf(cfg), "", envNames)
	root.HeadComment = "kwsub 配置示例, 复制为 config.yaml 或 ~/.kwsub.yaml 后按需修改\n" +
		"值中可以引用环境变量, 例如 label: '{{env \"LABEL\" \"report\"}}'"

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(root)
	_ = enc.Close()

	buf.WriteString("\n")
	for _, line := range exampleWalkthrough {
		buf.WriteString(strings.TrimRight("# "+line, " ") + "\n")
	}

	return buf.Bytes()
}

// sectionNode 输出一个配置段。Config 只有两层：段 (render, log) 和叶子键。
func sectionNode(val reflect.Value, prefix string, envNames map[string]string) *yamlv3.Node {
	typ := val.Type()
	node := &yamlv3.Node{Kind: yamlv3.MappingNode}

	for i := range typ.NumField() {
		field := typ.Field(i)
		name := field.Tag.Get("koanf")
		if name == "" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		desc := field.Tag.Get("desc")

		keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: name}
		var valNode *yamlv3.Node

		if field.Type.Kind() == reflect.Struct {
			valNode = sectionNode(val.Field(i), key, envNames)
			keyNode.HeadComment = "\n" + desc
		} else {
			valNode = leafNode(val.Field(i))
			comment := fmt.Sprintf("%s [$%s]", desc, envNames[key])
			if key == "render.templates" {
				keyNode.HeadComment = comment + ", 环境变量以逗号分隔\n" + templatesSample()
			} else {
				valNode.LineComment = comment
			}
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node
}

func templatesSample() string {
	var b strings.Builder
	b.WriteString("templates:")
	for _, path := range exampleTemplates {
		b.WriteString("\n  - " + path)
	}

	return b.String()
}

// leafNode 输出叶子值。字符串总是加引号，避免 "@@" 之类的分隔符被误解析。
func leafNode(val reflect.Value) *yamlv3.Node {
	switch val.Kind() {
	case reflect.Int:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(val.Int(), 10)}
	case reflect.Slice:
		seq := &yamlv3.Node{Kind: yamlv3.SequenceNode, Style: yamlv3.FlowStyle}
		for j := range val.Len() {
			seq.Content = append(seq.Content, leafNode(val.Index(j)))
		}
		return seq
	default:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: val.String(), Style: yamlv3.DoubleQuotedStyle}
	}
}
