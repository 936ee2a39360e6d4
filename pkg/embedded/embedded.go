// Package embedded 提供嵌入资源的统一访问接口
//
// embed.FS 声明在 assets 包中（与资源文件同目录）。
// 本包只负责路径规范化，让 config 与 scenes 不直接依赖 assets 包，
// 测试时也可以注入 fstest.MapFS。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init() 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

const assetPrefix = "assets/"

var (
	contentFS   fs.FS
	initialized bool
)

// Init 注入资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(content fs.FS) {
	contentFS = content
	initialized = content != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径：正斜杠、去掉 "./" 与 "assets/" 前缀
// 资源路径统一写作 "assets/story.yaml"，与源码树中的位置一致
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, assetPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with %q)", path, assetPrefix)
	}
	return strings.TrimPrefix(path, assetPrefix), nil
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "assets/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	name, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(contentFS, name)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if !initialized {
		return false
	}
	name, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(contentFS, name)
	return err == nil
}

// Glob 匹配嵌入文件，返回值保留 "assets/" 前缀
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	name, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(contentFS, name)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = assetPrefix + m
	}
	return matches, nil
}
