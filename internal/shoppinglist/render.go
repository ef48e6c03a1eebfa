package shoppinglist

import (
	"errors"
	"fmt"
	"strings"
)

// Format 导出格式
type Format string

const (
	FormatText     Format = "text"
	FormatDocument Format = "document"
)

// ErrUnsupportedFormat 不支持的导出格式
var ErrUnsupportedFormat = errors.New("unsupported shopping list format")

const (
	textContentType     = "text/plain; charset=utf-8"
	textFilename        = "shopping_cart.txt"
	documentContentType = "application/pdf"
	documentFilename    = "shopping_cart.pdf"
	lineSeparator       = ","
)

// Options 渲染参数
type Options struct {
	Header string // 标题行，按请求语言传入
}

// Rendered 渲染结果
type Rendered struct {
	Body        []byte
	ContentType string
	Filename    string
}

// ParseFormat 解析格式参数，空值视为 text
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatText:
		return FormatText, nil
	case FormatDocument:
		return FormatDocument, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// Render 按格式渲染购物清单，失败时不返回任何内容
func Render(list List, format Format, opts Options) (*Rendered, error) {
	switch format {
	case FormatText:
		return &Rendered{
			Body:        renderText(list, opts.Header),
			ContentType: textContentType,
			Filename:    textFilename,
		}, nil
	case FormatDocument:
		body, err := renderDocument(list, opts.Header)
		if err != nil {
			return nil, err
		}
		return &Rendered{
			Body:        body,
			ContentType: documentContentType,
			Filename:    documentFilename,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// formatLine 单行内容，不含分隔符
func formatLine(line Line) string {
	return fmt.Sprintf("%d. %s - %d %s", line.Number, line.Name, line.Total, line.Unit)
}
