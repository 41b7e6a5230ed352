package utils

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// ResourceMonitor 定期采样堆内存，记录峰值
type ResourceMonitor struct {
	interval time.Duration
	mu       sync.Mutex
	peakMB   float64
	stop     chan struct{}
	done     chan struct{}
}

// NewResourceMonitor 创建新的资源监控器
func NewResourceMonitor() *ResourceMonitor {
	return &ResourceMonitor{interval: 500 * time.Millisecond}
}

// Start 启动资源监控，重复调用无效
func (rm *ResourceMonitor) Start() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.stop != nil {
		return
	}
	rm.stop = make(chan struct{})
	rm.done = make(chan struct{})
	go rm.loop(rm.stop, rm.done)
}

// Stop 停止采样并等待后台 goroutine 退出
func (rm *ResourceMonitor) Stop() {
	rm.mu.Lock()
	stop, done := rm.stop, rm.done
	rm.stop, rm.done = nil, nil
	rm.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (rm *ResourceMonitor) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(rm.interval)
	defer ticker.Stop()
	for {
		rm.sample()
		select {
		case <-stop:
			rm.sample()
			return
		case <-ticker.C:
		}
	}
}

func (rm *ResourceMonitor) sample() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mb := float64(m.Alloc) / 1024 / 1024
	rm.mu.Lock()
	if mb > rm.peakMB {
		rm.peakMB = mb
	}
	rm.mu.Unlock()
}

// PeakMemoryMB 最高内存占用
func (rm *ResourceMonitor) PeakMemoryMB() float64 {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.peakMB
}

// Report 停止监控并打印统计
func (rm *ResourceMonitor) Report(elapsed time.Duration, useColor bool) {
	rm.Stop()
	fmt.Println(ColoredPrintf(Cyan, "📊 耗时 %s，最高内存占用 %.2f MB", useColor, elapsed.Round(time.Millisecond), rm.PeakMemoryMB()))
}
