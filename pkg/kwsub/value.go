package kwsub

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ErrUnsupportedType 表示 FromAny 遇到无法表示为记录值的 Go 类型。
var ErrUnsupportedType = errors.New("unsupported value type")

// Kind 记录值的类别
type Kind uint8

const (
	KindScalar  Kind = iota // 标量（字符串）
	KindMapping             // 映射（嵌套记录）
	KindList                // 有序列表
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindList:
		return "list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value 是记录树中的一个节点：标量、映射或列表之一。
//
// 零值是空字符串标量。Value 创建后不可变，可在多个 goroutine 间共享。
type Value struct {
	kind   Kind
	text   string
	fields map[string]Value
	items  []Value
}

// Scalar 创建标量值
func Scalar(s string) Value {
	return Value{kind: KindScalar, text: s}
}

// Mapping 创建映射值。传入的 map 被复制，调用方之后的修改不影响该值。
func Mapping(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}

	return Value{kind: KindMapping, fields: m}
}

// List 创建列表值
func List(items ...Value) Value {
	return Value{kind: KindList, items: append([]Value(nil), items...)}
}

// Kind 返回值的类别
func (v Value) Kind() Kind { return v.kind }

// Text 返回标量文本；非标量返回空字符串。
func (v Value) Text() string { return v.text }

// Field 按 key 查找映射字段。非映射值总是返回 false。
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	f, ok := v.fields[key]

	return f, ok
}

// Keys 返回映射的 key，按字典序排列。
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Items 返回列表元素
func (v Value) Items() []Value { return v.items }

// Len 返回映射字段数或列表长度；标量为 0。
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.fields)
	case KindList:
		return len(v.items)
	default:
		return 0
	}
}

// String 返回值的显示形式，用于诊断输出。
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)

	return b.String()
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.kind {
	case KindMapping:
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			v.fields[k].writeTo(b)
		}
		b.WriteByte('}')
	case KindList:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.writeTo(b)
		}
		b.WriteByte(']')
	default:
		b.WriteString(strconv.Quote(v.text))
	}
}

// FromAny 将解码后的 JSON/YAML 树转换为 Value。
//
// 支持的输入：
//   - string 及其他标量（数字、布尔）：转为显示文本
//   - nil：空字符串标量
//   - map[string]any / map[any]any：映射
//   - []any 及其他切片：列表
//
// 其他类型（chan、func 等）返回 ErrUnsupportedType。
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Scalar(""), nil
	case Value:
		return t, nil
	case string:
		return Scalar(t), nil
	case bool:
		return Scalar(strconv.FormatBool(t)), nil
	case int:
		return Scalar(strconv.Itoa(t)), nil
	case int64:
		return Scalar(strconv.FormatInt(t, 10)), nil
	case uint64:
		return Scalar(strconv.FormatUint(t, 10)), nil
	case float64:
		return Scalar(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, raw := range t {
			fv, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			fields[k] = fv
		}
		return Value{kind: KindMapping, fields: fields}, nil
	case map[any]any:
		fields := make(map[string]Value, len(t))
		for k, raw := range t {
			key := fmt.Sprint(k)
			fv, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			fields[key] = fv
		}
		return Value{kind: KindMapping, fields: fields}, nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, raw := range t {
			iv, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, iv)
		}
		return Value{kind: KindList, items: items}, nil
	}

	return fromReflect(reflect.ValueOf(x))
}

// fromReflect 处理 FromAny 的类型开关未覆盖的类型，如 []string、map[string]int。
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Scalar(""), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Scalar(fmt.Sprint(rv.Interface())), nil
	case reflect.Slice, reflect.Array:
		items := make([]Value, 0, rv.Len())
		for i := range rv.Len() {
			iv, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, iv)
		}
		return Value{kind: KindList, items: items}, nil
	case reflect.Map:
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			fv, err := FromAny(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			fields[key] = fv
		}
		return Value{kind: KindMapping, fields: fields}, nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Kind())
	}
}

// MustFromAny 与 FromAny 相同，但出错时 panic。用于测试和字面量数据。
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}

	return v
}
