package scenes

import (
	"bytes"
	"log"

	"github.com/decker502/stay/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// textRole 文字的用途，决定字体与字号
type textRole int

const (
	roleBody textRole = iota
	roleTitle
	roleHeading
	roleItalic
	roleSmall
	roleButton
)

// FontSet 叙事界面使用的全部字体
// 字体数据来自 gofont，不依赖任何外部文件
type FontSet struct {
	faces map[textRole]*text.GoTextFace
}

// LoadFonts 加载内置字体
// 单个字体解析失败时记录日志并回退到常规字体，全部失败时返回空字体集（只绘制图形）
func LoadFonts() *FontSet {
	regular := loadFaceSource("regular", goregular.TTF)
	italic := loadFaceSource("italic", goitalic.TTF)
	bold := loadFaceSource("bold", gobold.TTF)
	if italic == nil {
		italic = regular
	}
	if bold == nil {
		bold = regular
	}

	fs := &FontSet{faces: make(map[textRole]*text.GoTextFace)}
	add := func(role textRole, src *text.GoTextFaceSource, size float64) {
		if src != nil {
			fs.faces[role] = &text.GoTextFace{Source: src, Size: size}
		}
	}
	add(roleBody, regular, config.FontSizeBody)
	add(roleTitle, bold, config.FontSizeTitle)
	add(roleHeading, regular, config.FontSizeHeading)
	add(roleItalic, italic, config.FontSizeBody)
	add(roleSmall, regular, config.FontSizeSmall)
	add(roleButton, bold, config.FontSizeBody*0.85)
	return fs
}

func loadFaceSource(name string, data []byte) *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		log.Printf("[Fonts] Failed to load %s face: %v", name, err)
		return nil
	}
	return src
}

// Face 返回指定用途的字体，可能为 nil
func (fs *FontSet) Face(role textRole) *text.GoTextFace {
	if fs == nil {
		return nil
	}
	return fs.faces[role]
}

// Measure 测量文字宽度，字体缺失时按字号估算
func (fs *FontSet) Measure(role textRole, s string) float64 {
	if face := fs.Face(role); face != nil {
		w, _ := text.Measure(s, face, 0)
		return w
	}
	return estimateWidth(role, s)
}

// LineHeight 返回行高
func (fs *FontSet) LineHeight(role textRole) float64 {
	return roleSize(role) * config.LineSpacingFactor
}

func roleSize(role textRole) float64 {
	switch role {
	case roleTitle:
		return config.FontSizeTitle
	case roleHeading:
		return config.FontSizeHeading
	case roleSmall:
		return config.FontSizeSmall
	case roleButton:
		return config.FontSizeBody * 0.85
	default:
		return config.FontSizeBody
	}
}

// estimateWidth 每个字符约 0.52 个字号宽
func estimateWidth(role textRole, s string) float64 {
	return float64(len([]rune(s))) * roleSize(role) * 0.52
}
