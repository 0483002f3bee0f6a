package kwsub

import "strings"

// Resolve 在记录上解析点分路径，返回解析出的值序列和是否解析成功。
//
// 解析按路径段深度优先进行：
//   - 映射含该段：下降
//   - 映射缺该段、标量还有剩余段：该上下文失败，不产出值
//   - 列表：剩余路径对每个元素独立解析，结果按元素顺序拼接，
//     失败的元素被跳过
//
// 路径结束时，标量产出其文本；映射不是叶子，视为类型不匹配。
// 没有任何上下文存活时 ok 为 false，此时调用方应将占位符原样输出。
func Resolve(record Value, path string) (values []string, ok bool) {
	values = resolveSegments(record, strings.Split(path, "."), nil)

	return values, len(values) > 0
}

func resolveSegments(node Value, segs []string, out []string) []string {
	for i, seg := range segs {
		switch node.Kind() {
		case KindList:
			for _, item := range node.Items() {
				out = resolveSegments(item, segs[i:], out)
			}
			return out
		case KindMapping:
			next, ok := node.Field(seg)
			if !ok {
				return out
			}
			node = next
		default:
			return out
		}
	}

	switch node.Kind() {
	case KindScalar:
		return append(out, node.Text())
	case KindList:
		for _, item := range node.Items() {
			out = resolveSegments(item, nil, out)
		}
	}

	return out
}
