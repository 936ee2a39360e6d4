package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 超出范围的输入先夹紧。
//
// 参考：https://easings.net/

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（文字上浮淡入）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// 特点：非常柔和，适合呼吸、辉光起伏
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	t = Clamp01(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Smoothstep Hermite 平滑插值
// 公式：f(t) = t²(3 - 2t)
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（t 不夹紧）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FadeProgress 计算延迟淡入的进度
//
// 参数：
//   - elapsed: 元素出现后经过的时间（秒）
//   - delay: 开始淡入前的等待（秒）
//   - duration: 淡入时长（秒），<= 0 时立即完成
//
// 返回：经过 EaseOutCubic 的进度 [0, 1]
func FadeProgress(elapsed, delay, duration float64) float64 {
	if elapsed < delay {
		return 0
	}
	if duration <= 0 {
		return 1
	}
	return EaseOutCubic((elapsed - delay) / duration)
}

// Pulse 周期为 period 秒的 [0,1] 呼吸曲线
func Pulse(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}
	return 0.5 - 0.5*math.Cos(2*math.Pi*elapsed/period)
}
