package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/stay/pkg/components"
	"github.com/decker502/stay/pkg/ecs"
	"github.com/decker502/stay/pkg/game"
)

// 背景粒子场参数
const (
	ambientMaxParticles  = 48
	ambientSpawnRate     = 3.0  // 每秒生成数（暖度为 0、正常速度时）
	ambientWarmSpawnRate = 3.0  // 暖度为 1 时额外的每秒生成数
	ambientMinLifetime   = 6.0  // 秒
	ambientMaxLifetime   = 11.0 // 秒
	ambientRiseSpeed     = 18.0 // 像素/秒
	ambientHeartChance   = 0.15
)

// AmbientParticleSystem 背景粒子场
//
// 职责：
//   - 按 VisualParams 的速度与暖度生成缓慢上升的光点
//   - 推进位置与生命周期（暂停时完全冻结）
//   - 窗口大小变化时重建粒子场
type AmbientParticleSystem struct {
	entityManager  *ecs.EntityManager
	lifetimeSystem *LifetimeSystem
	rng            *rand.Rand
	width, height  float64
	elapsed        float64
	spawnBudget    float64
}

// NewAmbientParticleSystem 创建背景粒子系统
//
// 参数：
//   - em: 实体管理器
//   - seed: 随机种子（相同种子得到相同的粒子场）
func NewAmbientParticleSystem(em *ecs.EntityManager, seed int64) *AmbientParticleSystem {
	return &AmbientParticleSystem{
		entityManager:  em,
		lifetimeSystem: NewLifetimeSystem(em),
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// SetBounds 设置粒子场范围
// 尺寸变化时清空并预先撒一半的粒子，重复调用相同尺寸无效果
func (s *AmbientParticleSystem) SetBounds(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.entityManager.Clear()
	s.spawnBudget = 0
	if width <= 0 || height <= 0 {
		return
	}
	for i := 0; i < ambientMaxParticles/2; i++ {
		id := s.spawn()
		// 预先撒布的粒子从随机年龄开始，避免同时淡入
		if l, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
			l.CurrentLifetime = s.rng.Float64() * l.MaxLifetime * 0.6
		}
		if p, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			p.Y = s.rng.Float64() * height
		}
	}
}

// Update 推进粒子场
func (s *AmbientParticleSystem) Update(deltaTime float64, params game.VisualParams) {
	if s.width <= 0 || s.height <= 0 || params.Speed <= 0 {
		return
	}
	dt := deltaTime * params.Speed
	s.elapsed += dt

	s.spawnBudget += dt * (ambientSpawnRate + ambientWarmSpawnRate*params.Warmth)
	for s.spawnBudget >= 1 {
		s.spawnBudget--
		if s.Count() < ambientMaxParticles {
			s.spawn()
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sway := math.Sin(s.elapsed*p.SwayFrequency+p.Phase) * p.SwayAmplitude
		pos.X += (p.VelocityX + sway) * dt
		pos.Y += p.VelocityY * dt
		if pos.Y < -p.Radius*2 {
			s.entityManager.DestroyEntity(id)
		}
	}

	s.lifetimeSystem.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// Count 返回当前粒子数量
func (s *AmbientParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager))
}

// Each 按实体顺序遍历粒子（渲染用）
func (s *AmbientParticleSystem) Each(fn func(pos *components.PositionComponent, p *components.ParticleComponent, alpha float64)) {
	for _, id := range ecs.GetEntitiesWith3[*components.ParticleComponent, *components.PositionComponent, *components.LifetimeComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		l, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		fn(pos, p, ParticleAlpha(p, l))
	}
}

func (s *AmbientParticleSystem) spawn() ecs.EntityID {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PositionComponent{
		X: s.rng.Float64() * s.width,
		Y: s.height + s.rng.Float64()*20,
	})
	s.entityManager.AddComponent(id, &components.ParticleComponent{
		VelocityX:     (s.rng.Float64() - 0.5) * 4,
		VelocityY:     -ambientRiseSpeed * (0.6 + 0.8*s.rng.Float64()),
		SwayAmplitude: 4 + 6*s.rng.Float64(),
		SwayFrequency: 0.4 + 0.6*s.rng.Float64(),
		Phase:         s.rng.Float64() * 2 * math.Pi,
		Radius:        1 + 2.5*s.rng.Float64(),
		Brightness:    0.25 + 0.5*s.rng.Float64(),
		Heart:         s.rng.Float64() < ambientHeartChance,
	})
	s.entityManager.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: ambientMinLifetime + (ambientMaxLifetime-ambientMinLifetime)*s.rng.Float64(),
	})
	return id
}

// ParticleAlpha 根据生命周期计算淡入淡出后的透明度
// 前 20% 淡入，后 30% 淡出
func ParticleAlpha(p *components.ParticleComponent, l *components.LifetimeComponent) float64 {
	if p == nil || l == nil {
		return 0
	}
	ratio := l.Ratio()
	switch {
	case ratio <= 0:
		return 0
	case ratio < 0.2:
		return p.Brightness * ratio / 0.2
	case ratio < 0.7:
		return p.Brightness
	case ratio < 1:
		return p.Brightness * (1 - ratio) / 0.3
	default:
		return 0
	}
}
