// Package assets 嵌入叙事内容与着色器源码
//
// 与 embed 指令同目录的文件才能被嵌入，因此资源与本文件放在一起，
// 桌面端 main 与移动端 mobile 共用同一份 FS。
package assets

import "embed"

// FS 包含 story.yaml 与 shaders/*.kage
//
//go:embed story.yaml shaders/*.kage
var FS embed.FS
