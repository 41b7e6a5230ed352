package mapart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrColorOutOfRange  = errors.New("mapart: map color index outside 0..127")
	ErrUnobtainableTone = errors.New("mapart: tone cannot be built with a staircase")
)

// Tone 地图色调，地图颜色字节为 基础色ID*4 + Tone
type Tone int

const (
	Dark Tone = iota
	Normal
	Light
	// Lowest 生存模式下无法通过高度差得到
	Lowest
)

// DefaultTones 可以用阶梯搭出的三种色调
var DefaultTones = []Tone{Dark, Normal, Light}

var toneMultipliers = [...]int{180, 220, 255, 135}

// Multiplier 色调乘数
func (t Tone) Multiplier() int {
	if t < Dark || t > Lowest {
		return 0
	}
	return toneMultipliers[t]
}

func (t Tone) String() string {
	switch t {
	case Dark:
		return "dark"
	case Normal:
		return "normal"
	case Light:
		return "light"
	case Lowest:
		return "lowest"
	}
	return fmt.Sprintf("Tone(%d)", int(t))
}

// ParseTones 解析逗号分隔的色调列表，空串返回 DefaultTones
func ParseTones(s string) ([]Tone, error) {
	if strings.TrimSpace(s) == "" {
		return append([]Tone(nil), DefaultTones...), nil
	}
	var tones []Tone
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "dark":
			tones = append(tones, Dark)
		case "normal", "flat":
			tones = append(tones, Normal)
		case "light":
			tones = append(tones, Light)
		case "lowest", "unobtainable":
			tones = append(tones, Lowest)
		default:
			return nil, fmt.Errorf("unknown tone %q", part)
		}
	}
	return tones, nil
}

// ColorIndex 基础色与色调组合成地图颜色字节
func ColorIndex(id int, t Tone) int {
	return id*4 + int(t)
}

// SplitIndex ColorIndex 的逆运算
func SplitIndex(index int) (int, Tone) {
	return index / 4, Tone(index % 4)
}
