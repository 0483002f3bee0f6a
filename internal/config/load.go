package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/tmpl"
)

// ConfigFlag 指定配置文件的全局 flag 名称
const ConfigFlag = "config"

type loadOptions struct {
	configPaths []string
	envPrefix   string
	environ     func() []string
	stdin       io.Reader
}

// Option 配置加载选项
type Option func(*loadOptions)

// WithConfigPaths 设置配置文件搜索路径，找到第一个即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *loadOptions) { o.configPaths = paths }
}

// WithEnvPrefix 设置环境变量前缀，空字符串表示禁用环境变量。
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithEnviron 替换环境变量来源，默认 os.Environ。
func WithEnviron(environ func() []string) Option {
	return func(o *loadOptions) { o.environ = environ }
}

// WithStdin 替换配置路径为 "-" 时读取的输入，默认 os.Stdin。
func WithStdin(r io.Reader) Option {
	return func(o *loadOptions) { o.stdin = r }
}

// DefaultPaths 返回默认配置文件搜索路径
// appName 可选，若提供则包含用户主目录和系统配置目录
func DefaultPaths(appName ...string) []string {
	paths := []string{
		"config.yaml",
		"config/config.yaml",
	}

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return paths
}

// Load 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags。
//
// cmd 可为 nil。若 cmd 上设置了 --config，则只加载该文件，且文件必须存在。
func Load(cmd *cli.Command, appName string, opts ...Option) (*Config, error) {
	o := loadOptions{
		configPaths: DefaultPaths(appName),
		envPrefix:   EnvPrefix,
		environ:     os.Environ,
		stdin:       os.Stdin,
	}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	// 1️⃣ 默认值
	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// 2️⃣ 配置文件
	if cmd != nil && cmd.IsSet(ConfigFlag) {
		path := cmd.String(ConfigFlag)
		if err := loadFile(k, path, o.stdin, o.environ()); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		slog.Debug("Loaded config from file", "path", path)
	} else if err := loadFirstFile(k, o.configPaths, o.environ()); err != nil {
		return nil, err
	}

	keys := collectKoanfKeys(reflect.TypeOf(defaults), "")

	// 3️⃣ 环境变量
	if o.envPrefix != "" {
		if env := envValues(o.environ(), generateEnvBindings(o.envPrefix, keys), keys); len(env) > 0 {
			if err := k.Load(confmap.Provider(env, "."), nil); err != nil {
				return nil, fmt.Errorf("failed to load env config: %w", err)
			}
		}
	}

	// 4️⃣ CLI flags
	if cmd != nil {
		if flags := flagValues(cmd, keys); len(flags) > 0 {
			if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
				return nil, fmt.Errorf("failed to load cli flags: %w", err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// loadFirstFile 按顺序搜索配置文件，找到第一个即停止。
// 文件不存在时继续搜索；找到后展开或解析失败则返回错误。
func loadFirstFile(k *koanf.Koanf, paths []string, environ []string) error {
	for _, path := range paths {
		data, err := file.Provider(path).ReadBytes()
		if err != nil {
			continue
		}
		if err := loadBytes(k, path, data, environ); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		slog.Debug("Loaded config from file", "path", path)

		return nil
	}
	slog.Debug("No config file found, using defaults")

	return nil
}

// loadFile 加载指定的配置文件，"-" 表示从 stdin 读取 YAML。
func loadFile(k *koanf.Koanf, path string, stdin io.Reader, environ []string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = file.Provider(path).ReadBytes()
	}
	if err != nil {
		return err
	}

	return loadBytes(k, path, data, environ)
}

// loadBytes 展开配置文本中的环境变量模板后再解析。
func loadBytes(k *koanf.Koanf, path string, data []byte, environ []string) error {
	text, err := tmpl.Expand(path, string(data), environ)
	if err != nil {
		return err
	}

	return k.Load(rawbytes.Provider([]byte(text)), parserForPath(path))
}

// parserForPath 按扩展名选择解析器：.json 使用 JSON，其余使用 YAML。
func parserForPath(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}

	return yaml.Parser()
}

// ═══════════════════════════════════════════════════════════════════════════
// 键映射
// ═══════════════════════════════════════════════════════════════════════════

// collectKoanfKeys 递归收集结构体的 koanf key 及其字段类型。
func collectKoanfKeys(typ reflect.Type, prefix string) map[string]reflect.Type {
	keys := make(map[string]reflect.Type)
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("koanf")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			for k, t := range collectKoanfKeys(field.Type, key) {
				keys[k] = t
			}
			continue
		}
		keys[key] = field.Type
	}

	return keys
}

// generateEnvBindings 生成 环境变量名 → koanf key 的映射。
//
// 例如前缀 KWSUB_：render.label → KWSUB_RENDER_LABEL。
func generateEnvBindings(prefix string, keys map[string]reflect.Type) map[string]string {
	bindings := make(map[string]string, len(keys))
	for key := range keys {
		name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		bindings[prefix+name] = key
	}

	return bindings
}

// envValues 从环境变量中取出已绑定的值。切片类型按逗号分割。
func envValues(environ []string, bindings map[string]string, keys map[string]reflect.Type) map[string]any {
	values := make(map[string]any)
	for _, kv := range environ {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		key, bound := bindings[name]
		if !bound {
			continue
		}
		if keys[key].Kind() == reflect.Slice {
			values[key] = splitList(val)
			continue
		}
		values[key] = val
	}

	return values
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// flagValues 取出用户明确指定的 CLI flags。
//
// koanf key 转为 kebab-case 作为 flag 名称：render.label → --render-label。
func flagValues(cmd *cli.Command, keys map[string]reflect.Type) map[string]any {
	values := make(map[string]any)
	for key, typ := range keys {
		flag := strings.NewReplacer(".", "-", "_", "-").Replace(key)
		if !cmd.IsSet(flag) {
			continue
		}

		switch typ.Kind() {
		case reflect.String:
			values[key] = cmd.String(flag)
		case reflect.Bool:
			values[key] = cmd.Bool(flag)
		case reflect.Int:
			values[key] = cmd.Int(flag)
		case reflect.Slice:
			if typ.Elem().Kind() == reflect.String {
				values[key] = cmd.StringSlice(flag)
			}
		}
	}

	return values
}
