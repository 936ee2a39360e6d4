//go:build !mobile

// Package mobile 只在 -tags mobile 下包含 ebitenmobile 绑定（见 mobile.go）
//
// 桌面构建时这里为空，`go build ./...` 与 `go vet ./...` 仍能遍历到这个包。
package mobile
