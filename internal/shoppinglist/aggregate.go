// Package shoppinglist 汇总购物清单中的食材并渲染为可下载文件。
package shoppinglist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CartLineItem 购物清单中某个菜谱的一条食材用量
type CartLineItem struct {
	IngredientName string
	Unit           string
	Amount         int
}

// Line 汇总后的一行，Number 从 1 开始连续编号
type Line struct {
	Number int
	Name   string // 展示名称，首字母大写
	Unit   string
	Total  int
}

// List 汇总后的购物清单
type List struct {
	Lines []Line
}

// Empty 是否没有任何食材
func (l List) Empty() bool {
	return len(l.Lines) == 0
}

// TotalAmount 所有行用量之和
func (l List) TotalAmount() int {
	total := 0
	for _, line := range l.Lines {
		total += line.Total
	}
	return total
}

type lineKey struct {
	name string
	unit string
}

// Aggregate 按 (名称, 单位) 合并用量，保持首次出现的顺序
func Aggregate(items []CartLineItem) List {
	index := make(map[lineKey]int, len(items))
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		// 展示名会去掉首尾空白，分组键与之一致
		key := lineKey{name: strings.TrimSpace(item.IngredientName), unit: item.Unit}
		if pos, ok := index[key]; ok {
			lines[pos].Total += item.Amount
			continue
		}
		index[key] = len(lines)
		lines = append(lines, Line{
			Name:  Capitalize(item.IngredientName),
			Unit:  item.Unit,
			Total: item.Amount,
		})
	}
	for i := range lines {
		lines[i].Number = i + 1
	}
	return List{Lines: lines}
}

// Capitalize 将首个字符转为大写，其余保持不变
func Capitalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	first, size := utf8.DecodeRuneInString(value)
	if first == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(first)) + value[size:]
}
