//go:build !mobile

package utils

import "os"

// mobileEmulateEnv 桌面上模拟触屏布局的环境变量
const mobileEmulateEnv = "STAY_MOBILE_EMULATE"

// IsMobile 是否使用触屏布局（按钮、角落点和同意圆圈放大）
// 桌面构建默认 false，STAY_MOBILE_EMULATE=1 时在桌面窗口里预览触屏布局
func IsMobile() bool {
	return os.Getenv(mobileEmulateEnv) == "1"
}
