package scenes

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/decker502/stay/pkg/components"
	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/ecs"
	"github.com/decker502/stay/pkg/embedded"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HeartsShaderPath Kage 心形光斑着色器在嵌入 FS 中的路径
const HeartsShaderPath = "assets/shaders/hearts.kage"

const (
	// blobSegments 光团轮廓的分段数
	blobSegments = 96
	// blobTimeStep 每秒推进的动画时间（每帧 0.005，60 FPS）
	blobTimeStep = 0.3
)

// VisualLayer 背景视觉层：变形光团、心形光斑着色器、漂浮粒子
//
// 只读取 VisualParams 快照，不持有任何叙事状态。
// 任何绘制阶段 panic 后降级为静态背景色，不影响叙事界面。
type VisualLayer struct {
	palette config.Palette
	width   float64
	height  float64
	time    float64

	whiteImage *ebiten.Image
	whiteSub   *ebiten.Image
	shader     *ebiten.Shader

	entityManager *ecs.EntityManager
	particles     *systems.AmbientParticleSystem

	vertices []ebiten.Vertex
	indices  []uint16
	failed   bool
}

// NewVisualLayer 创建视觉层
// 着色器编译失败时只记录日志，光团与粒子照常绘制
func NewVisualLayer(palette config.Palette, width, height float64, seed int64) *VisualLayer {
	em := ecs.NewEntityManager()
	v := &VisualLayer{
		palette:       palette,
		entityManager: em,
		particles:     systems.NewAmbientParticleSystem(em, seed),
	}

	v.whiteImage = ebiten.NewImage(3, 3)
	v.whiteImage.Fill(color.White)
	v.whiteSub = v.whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	v.shader = loadShader(HeartsShaderPath)
	v.Resize(width, height)
	return v
}

func loadShader(path string) *ebiten.Shader {
	if !embedded.IsInitialized() {
		return nil
	}
	src, err := embedded.ReadFile(path)
	if err != nil {
		log.Printf("[VisualLayer] Failed to read shader %s: %v", path, err)
		return nil
	}
	shader, err := ebiten.NewShader(src)
	if err != nil {
		log.Printf("[VisualLayer] Failed to compile shader %s: %v (hearts disabled)", path, err)
		return nil
	}
	return shader
}

// Resize 窗口尺寸变化时重新布置粒子
func (v *VisualLayer) Resize(width, height float64) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.particles.SetBounds(width, height)
}

// Update 推进动画时间与粒子，IsPaused 时全部冻结
func (v *VisualLayer) Update(deltaTime float64, params game.VisualParams) {
	if v.failed {
		return
	}
	v.time += deltaTime * blobTimeStep * params.Speed
	v.particles.Update(deltaTime, params)
}

// Draw 绘制背景
func (v *VisualLayer) Draw(screen *ebiten.Image, params game.VisualParams) {
	if v.failed {
		screen.Fill(v.palette.Background)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[VisualLayer] Render failed, falling back to static background: %v", r)
			v.failed = true
			screen.Fill(v.palette.Background)
		}
	}()

	screen.Fill(v.palette.Background)
	v.drawBlob(screen, params)
	v.drawHearts(screen, params)
	v.drawParticles(screen, params)

	if params.WarmOverlay > 0 {
		warm := v.palette.Warm
		vector.DrawFilledRect(screen, 0, 0, float32(v.width), float32(v.height),
			color.NRGBA{R: warm.R, G: warm.G, B: warm.B, A: uint8(params.WarmOverlay * 255)}, false)
	}
	if params.Dim < 1 {
		vector.DrawFilledRect(screen, 0, 0, float32(v.width), float32(v.height),
			color.NRGBA{A: uint8((1 - params.Dim) * 255)}, false)
	}
}

// Failed 返回是否已降级为静态背景
func (v *VisualLayer) Failed() bool { return v.failed }

// drawBlob 正弦变形的径向光团，中心亮、边缘透明
func (v *VisualLayer) drawBlob(screen *ebiten.Image, params game.VisualParams) {
	cx, cy := float32(v.width/2), float32(v.height/2)
	base := math.Min(v.width, v.height) * (0.22 + 0.08*params.GlowIntensity)
	c := params.PrimaryColor
	r, g, b := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255
	centerA := float32(0.25 + 0.45*params.GlowIntensity)

	v.vertices = v.vertices[:0]
	v.indices = v.indices[:0]
	v.vertices = append(v.vertices, ebiten.Vertex{
		DstX: cx, DstY: cy, SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: centerA,
	})
	for i := 0; i < blobSegments; i++ {
		theta := 2 * math.Pi * float64(i) / blobSegments
		radius := base * blobRadius(theta, v.time)
		v.vertices = append(v.vertices, ebiten.Vertex{
			DstX:   cx + float32(math.Cos(theta)*radius),
			DstY:   cy + float32(math.Sin(theta)*radius),
			SrcX:   1,
			SrcY:   1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: 0,
		})
	}
	for i := 0; i < blobSegments; i++ {
		next := (i+1)%blobSegments + 1
		v.indices = append(v.indices, 0, uint16(i+1), uint16(next))
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.Blend = ebiten.BlendLighter
	screen.DrawTriangles(v.vertices, v.indices, v.whiteSub, op)
}

// blobRadius 光团轮廓在角度 theta 处的半径倍率
func blobRadius(theta, t float64) float64 {
	return 1 + 0.08*math.Sin(3*theta+t*2) + 0.05*math.Sin(5*theta-t*1.3) + 0.03*math.Sin(7*theta+t*0.7)
}

func (v *VisualLayer) drawHearts(screen *ebiten.Image, params game.VisualParams) {
	if v.shader == nil {
		return
	}
	c := params.PrimaryColor
	op := &ebiten.DrawRectShaderOptions{}
	op.Uniforms = map[string]any{
		"Time":       float32(v.time / blobTimeStep),
		"Resolution": []float32{float32(v.width), float32(v.height)},
		"Color":      []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255},
		"Glow":       float32(params.GlowIntensity),
		"Warmth":     float32(params.Warmth),
		"Speed":      float32(1),
	}
	op.Blend = ebiten.BlendLighter
	screen.DrawRectShader(int(v.width), int(v.height), v.shader, op)
}

func (v *VisualLayer) drawParticles(screen *ebiten.Image, params game.VisualParams) {
	tint := params.PrimaryColor
	v.particles.Each(func(pos *components.PositionComponent, p *components.ParticleComponent, alpha float64) {
		a := alpha * p.Brightness
		if a <= 0 {
			return
		}
		clr := color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: uint8(math.Min(1, a) * 200)}
		if p.Heart {
			v.drawHeart(screen, float32(pos.X), float32(pos.Y), float32(p.Radius), clr)
			return
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Radius), clr, true)
	})
}

// drawHeart 用两段三次贝塞尔曲线构成的心形
func (v *VisualLayer) drawHeart(screen *ebiten.Image, x, y, size float32, clr color.NRGBA) {
	s := size * 1.6
	var path vector.Path
	path.MoveTo(x, y+s*0.35)
	path.CubicTo(x-s*1.1, y-s*0.35, x-s*0.45, y-s*1.05, x, y-s*0.45)
	path.CubicTo(x+s*0.45, y-s*1.05, x+s*1.1, y-s*0.35, x, y+s*0.35)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(vs, is, v.whiteSub, op)
}

// ParticleCount 当前粒子数量
func (v *VisualLayer) ParticleCount() int { return v.particles.Count() }

// Dispose 释放 GPU 资源
func (v *VisualLayer) Dispose() {
	if v.shader != nil {
		v.shader.Deallocate()
		v.shader = nil
	}
	if v.whiteImage != nil {
		v.whiteImage.Deallocate()
		v.whiteImage = nil
	}
	v.entityManager.Clear()
}
