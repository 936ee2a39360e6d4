package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureFunc 返回一行文字的渲染宽度
type MeasureFunc func(s string) float64

// WordWrap 按单词自动换行
//
// 参数:
//   - textStr: 要换行的文本，显式的 "\n" 保留为段落分隔
//   - maxWidth: 最大宽度（与 measure 的单位一致）
//   - measure: 宽度测量函数
//
// 返回:
//   - []string: 换行后的每一行
//
// 换行规则:
//   - 在空白处断行，多个空白合并为一个空格
//   - 单个单词超过最大宽度时按字符强制断行
func WordWrap(textStr string, maxWidth float64, measure MeasureFunc) []string {
	if measure == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, para := range strings.Split(textStr, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			// 单词本身超宽：按字符拆开
			if measure(word) > maxWidth {
				pieces := breakWord(word, maxWidth, measure)
				lines = append(lines, pieces[:len(pieces)-1]...)
				current = pieces[len(pieces)-1]
			} else {
				current = word
			}
		}
		lines = append(lines, current)
	}
	return lines
}

func breakWord(word string, maxWidth float64, measure MeasureFunc) []string {
	var pieces []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && measure(candidate) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	return append(pieces, current)
}

// WrapText 使用字体测量宽度的 WordWrap
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if font == nil {
		return WordWrap(textStr, 0, nil)
	}
	return WordWrap(textStr, maxWidth, func(s string) float64 {
		return MeasureTextWidth(s, font)
	})
}

// MeasureTextWidth 测量文本宽度
func MeasureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
