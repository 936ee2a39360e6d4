package components

// ParticleComponent 背景粒子场中的一个光点（余烬/小心形）
//
// 纯数据组件：移动、淡入淡出、回收都由 AmbientParticleSystem 负责，
// 生命周期由同一实体上的 LifetimeComponent 记录。
type ParticleComponent struct {
	// 速度（像素/秒），VelocityY 为负表示向上飘
	VelocityX float64
	VelocityY float64

	// 左右摆动
	SwayAmplitude float64 // 摆动幅度（像素/秒）
	SwayFrequency float64 // 摆动频率（弧度/秒）
	Phase         float64 // 初始相位（弧度）

	// 外观
	Radius     float64 // 半径（像素）
	Brightness float64 // 亮度 0..1，渲染时乘以淡入淡出系数
	Heart      bool    // true 时渲染为小心形，否则为圆点
}
