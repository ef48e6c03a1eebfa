package shoppinglist

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

const documentFontFamily = "DocumentSans"

var (
	fontOnce  sync.Once
	fontBytes []byte
	fontErr   error
)

// LoadFont 进程内加载一次文档字体，path 为空时使用内置 Go Regular（含西里尔字母）
func LoadFont(path string) error {
	fontOnce.Do(func() {
		path = strings.TrimSpace(path)
		if path == "" {
			fontBytes = goregular.TTF
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fontErr = fmt.Errorf("load document font %s: %w", path, err)
			return
		}
		fontBytes = data
	})
	return fontErr
}

func documentFont() ([]byte, error) {
	if err := LoadFont(""); err != nil {
		return nil, err
	}
	return fontBytes, nil
}
