package game

import "time"

// Clock 提供当前时间，测试中替换为可控时钟
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 返回基于 time.Now 的时钟
func SystemClock() Clock { return systemClock{} }
