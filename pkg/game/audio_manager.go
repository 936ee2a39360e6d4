package game

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"

	"github.com/decker502/stay/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// 提示音与背景垫音的参数
const (
	chimeDuration  = 0.9  // 秒
	chimeVolume    = 0.35 // 0..1
	padDuration    = 4.0  // 一个循环的长度（秒）
	padBaseVolume  = 0.08
	padWarmthBoost = 0.12
)

// sceneChimes 每个场景进入时的提示音频率（Hz）
// 越往后音高越低、越柔和
var sceneChimes = map[types.Scene]float64{
	types.SceneProgression:        659.25, // E5
	types.SceneQuestion1:          587.33, // D5
	types.SceneLoyalty:            523.25, // C5
	types.SceneAffirmation:        587.33,
	types.SceneTransitionToScroll: 493.88, // B4
	types.ScenePhase2:             440.00, // A4
	types.SceneEndGamePopup:       392.00, // G4
}

// AudioManager 音频管理器
// 职责：
//   - 场景切换时播放合成的提示音
//   - 循环播放很轻的背景垫音，音量随暖度缓慢上升
//   - 静音开关
//
// 所有音频都在内存中合成，不依赖音频文件。
// ctx 为 nil 时（测试、终端前端）所有播放调用都是空操作。
type AudioManager struct {
	ctx          *audio.Context
	muted        bool
	soundPlayers map[types.Scene]*audio.Player // 提示音播放器缓存
	padPlayer    *audio.Player
	lastPlayed   types.Scene
	playedCount  int
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（可为 nil）
//   - muted: 启动时是否静音
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, muted bool) *AudioManager {
	return &AudioManager{
		ctx:          ctx,
		muted:        muted,
		soundPlayers: make(map[types.Scene]*audio.Player),
	}
}

// OnSceneChange 作为 SceneChangeListener 注册到 SceneController
func (am *AudioManager) OnSceneChange(from, to types.Scene) {
	am.PlayChime(to)
}

// PlayChime 播放场景提示音
//
// 返回：
//   - bool: 是否真正播放
func (am *AudioManager) PlayChime(scene types.Scene) bool {
	if am.muted {
		return false
	}
	if _, ok := sceneChimes[scene]; !ok {
		return false
	}
	am.lastPlayed = scene
	am.playedCount++

	player := am.getSoundPlayer(scene)
	if player == nil {
		return false
	}
	player.SetVolume(chimeVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind chime for %s: %v", scene, err)
	}
	player.Play()
	return true
}

// StartPad 开始循环播放背景垫音
func (am *AudioManager) StartPad() {
	if am.ctx == nil || am.padPlayer != nil {
		return
	}
	data := SynthesizePad(padDuration, AudioSampleRate)
	loop := audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data)))
	player, err := am.ctx.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create pad player: %v", err)
		return
	}
	am.padPlayer = player
	am.padPlayer.SetVolume(am.padVolume(0))
	if !am.muted {
		am.padPlayer.Play()
	}
}

// UpdateWarmth 根据暖度调整背景垫音音量
func (am *AudioManager) UpdateWarmth(warmth float64) {
	if am.padPlayer == nil {
		return
	}
	am.padPlayer.SetVolume(am.padVolume(warmth))
}

func (am *AudioManager) padVolume(warmth float64) float64 {
	return padBaseVolume + padWarmthBoost*clamp01(warmth)
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if am.padPlayer == nil {
		return
	}
	if muted {
		am.padPlayer.Pause()
	} else {
		am.padPlayer.Play()
	}
}

// ToggleMuted 切换静音，返回切换后的状态
func (am *AudioManager) ToggleMuted() bool {
	am.SetMuted(!am.muted)
	log.Printf("[AudioManager] Muted=%v", am.muted)
	return am.muted
}

// IsMuted 返回是否静音
func (am *AudioManager) IsMuted() bool { return am.muted }

// Close 停止并释放全部播放器
func (am *AudioManager) Close() {
	for scene, p := range am.soundPlayers {
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close chime for %s: %v", scene, err)
		}
	}
	am.soundPlayers = make(map[types.Scene]*audio.Player)
	if am.padPlayer != nil {
		if err := am.padPlayer.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close pad player: %v", err)
		}
		am.padPlayer = nil
	}
}

func (am *AudioManager) getSoundPlayer(scene types.Scene) *audio.Player {
	if am.ctx == nil {
		return nil
	}
	if player, ok := am.soundPlayers[scene]; ok {
		return player
	}
	data := SynthesizeChime(sceneChimes[scene], chimeDuration, AudioSampleRate)
	player := am.ctx.NewPlayerFromBytes(data)
	am.soundPlayers[scene] = player
	return player
}

// SynthesizeChime 合成一个带泛音和指数衰减的提示音
// 输出为 16 位小端立体声 PCM（ebiten audio 的默认格式）
//
// 参数：
//   - freq: 基频（Hz）
//   - seconds: 时长
//   - sampleRate: 采样率
func SynthesizeChime(freq, seconds float64, sampleRate int) []byte {
	if freq <= 0 || seconds <= 0 || sampleRate <= 0 {
		return nil
	}
	n := int(seconds * float64(sampleRate))
	buf := make([]byte, n*4)
	attack := int(0.01 * float64(sampleRate))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-4.5 * t / seconds)
		if i < attack {
			env *= float64(i) / float64(attack)
		}
		v := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t) + 0.1*math.Sin(2*math.Pi*freq*3*t)
		writeStereoSample(buf[i*4:], v/1.4*env)
	}
	return buf
}

// SynthesizePad 合成可无缝循环的柔和背景垫音
// 各分量频率取整数个周期，首尾相接处没有爆音
func SynthesizePad(seconds float64, sampleRate int) []byte {
	if seconds <= 0 || sampleRate <= 0 {
		return nil
	}
	n := int(seconds * float64(sampleRate))
	buf := make([]byte, n*4)
	// A3 / E4 / C#5，按循环长度取整数周期
	partials := []float64{220, 330, 554}
	for i := range partials {
		partials[i] = math.Round(partials[i]*seconds) / seconds
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		swell := 0.75 + 0.25*math.Sin(2*math.Pi*t/seconds)
		v := 0.0
		for k, f := range partials {
			v += math.Sin(2*math.Pi*f*t) / float64(k+2)
		}
		writeStereoSample(buf[i*4:], v*0.5*swell)
	}
	return buf
}

func writeStereoSample(dst []byte, v float64) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s := int16(v * math.MaxInt16)
	binary.LittleEndian.PutUint16(dst[0:], uint16(s))
	binary.LittleEndian.PutUint16(dst[2:], uint16(s))
}
