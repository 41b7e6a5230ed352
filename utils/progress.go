package utils

import (
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Progress 包装终端进度条，可作为转换器的进度回调
type Progress struct {
	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	enabled bool
	color   bool
	out     io.Writer
}

// NewProgress 创建进度显示。enabled 为 false 时所有方法都是空操作
func NewProgress(enabled, useColor bool) *Progress {
	return &Progress{enabled: enabled, color: useColor, out: os.Stderr}
}

// Update 符合 func(current, total int, message string) 的回调
func (p *Progress) Update(current, total int, message string) {
	if !p.enabled || total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil || p.bar.GetMax() != total {
		if p.bar != nil {
			_ = p.bar.Finish()
		}
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(message),
			progressbar.OptionEnableColorCodes(p.color),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(p.out, "\n") }),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	p.bar.Describe(message)
	_ = p.bar.Set(current)
	if current >= total {
		p.bar = nil
	}
}
