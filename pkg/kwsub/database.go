package kwsub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	yamlv3 "go.yaml.in/yaml/v3"
)

// Database 是按输入顺序排列的根记录。
type Database []Value

// NewDatabase 将单个值包装为数据库。
//
// 列表视为根记录序列，其他值（映射、标量）视为单个根记录。
func NewDatabase(v Value) Database {
	if v.Kind() == KindList {
		return Database(v.Items())
	}

	return Database{v}
}

// ParseDatabase 解码 YAML 或 JSON 文本为数据库。
//
// 合法 JSON 按 JSON 解码（数字保留原文），其余按 YAML 解码。
// 空文档得到空数据库。
func ParseDatabase(data []byte) (Database, error) {
	var raw any
	if json.Valid(data) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode database: %w", err)
		}
	} else if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	if raw == nil {
		return Database{}, nil
	}

	v, err := FromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("convert database: %w", err)
	}

	return NewDatabase(v), nil
}

// LoadDatabase 读取并解码数据库文件，path 为 "-" 时读取标准输入。
func LoadDatabase(path string) (Database, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read database %s: %w", path, err)
	}

	db, err := ParseDatabase(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return db, nil
}
