//go:build mobile

package utils

// IsMobile ebitenmobile 构建总是使用触屏布局
func IsMobile() bool {
	return true
}
