package shoppinglist

import "strings"

// renderText 标题行之后每行一个食材，除最后一行外以逗号结尾，末尾无换行
func renderText(list List, header string) []byte {
	var b strings.Builder
	b.WriteString(header)
	for i, line := range list.Lines {
		b.WriteByte('\n')
		b.WriteString(formatLine(line))
		if i < len(list.Lines)-1 {
			b.WriteString(lineSeparator)
		}
	}
	return []byte(b.String())
}
