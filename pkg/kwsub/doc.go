// Package kwsub 提供关键字替换引擎。
//
// 给定一个包含占位符的文本模板和一个层级数据记录（"数据库"），
// 引擎按点分路径查找值并替换占位符，生成一行或多行输出。
//
// # 占位符语法
//
// 占位符由一对固定分隔符（默认 "@@"）包围点分路径组成：
//
//	@@name@@ subinstance: @@subinstlist.name@@
//
// 匹配是非贪婪的：占位符从一个分隔符延伸到最近的下一个分隔符。
// 不成对的分隔符原样保留为字面文本。
//
// # 解析规则
//
//  1. 映射：按 key 下降，key 不存在则该上下文解析失败
//  2. 列表：剩余路径对每个元素独立解析，结果按元素顺序拼接
//  3. 标量：路径结束时产出其显示文本
//
// 解析失败（或结果为空）的占位符在该记录的所有输出行中保持原样。
//
// # 笛卡尔积
//
// 同一记录中，每个解析成功的占位符是一个轴，轴序为首次出现顺序。
// 最左的轴变化最慢，最右的轴变化最快：
//
//	db := kwsub.NewDatabase(record)
//	lines := kwsub.Substitute(db, "@@a.name@@ @@b.name@@", "report")
//
// 多个根记录按输入顺序依次渲染，输出拼接在一起。
//
// 详见 [Substitute] 和 [Engine]。
package kwsub
