package dither

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidKernel = errors.New("dither: kernel matrix is empty, ragged or has a zero divisor")
	ErrInvalidMatrix = errors.New("dither: threshold matrix is invalid")
)

// Kernel 误差扩散核。Matrix[dy][dx] 的权重作用于 (x+dx-OffsetX, y+dy-OffsetY)
type Kernel struct {
	Matrix  [][]int
	OffsetX int
	OffsetY int
}

// Divisor 所有权重之和
func (k Kernel) Divisor() int {
	sum := 0
	for _, row := range k.Matrix {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}

// Validate 检查矩阵形状与权重
func (k Kernel) Validate() error {
	if len(k.Matrix) == 0 || len(k.Matrix[0]) == 0 {
		return ErrInvalidKernel
	}
	for _, row := range k.Matrix {
		if len(row) != len(k.Matrix[0]) {
			return ErrInvalidKernel
		}
		for _, w := range row {
			if w < 0 {
				return fmt.Errorf("%w: negative weight %d", ErrInvalidKernel, w)
			}
		}
	}
	if k.Divisor() == 0 {
		return ErrInvalidKernel
	}
	return nil
}

var (
	FloydSteinberg = Kernel{
		Matrix: [][]int{
			{0, 0, 0, 7, 0},
			{0, 3, 5, 1, 0},
			{0, 0, 0, 0, 0},
		},
		OffsetX: 2,
	}
	MinAvgErr = Kernel{
		Matrix: [][]int{
			{0, 0, 0, 7, 5},
			{3, 5, 7, 5, 3},
			{1, 3, 5, 3, 1},
		},
		OffsetX: 2,
	}
	Burkes = Kernel{
		Matrix: [][]int{
			{0, 0, 0, 8, 4},
			{2, 4, 8, 4, 2},
			{0, 0, 0, 0, 0},
		},
		OffsetX: 2,
	}
	SierraLite = Kernel{
		Matrix: [][]int{
			{0, 0, 0, 2, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 0, 0, 0},
		},
		OffsetX: 2,
	}
	Stucki = Kernel{
		Matrix: [][]int{
			{0, 0, 0, 8, 4},
			{2, 4, 8, 4, 2},
			{1, 2, 4, 2, 1},
		},
		OffsetX: 2,
	}
	// Atkinson 只扩散 6/8 的误差
	Atkinson = Kernel{
		Matrix: [][]int{
			{0, 0, 0, 1, 1},
			{0, 1, 1, 1, 0},
			{0, 0, 1, 0, 0},
		},
		OffsetX: 2,
	}
)

var kernels = map[string]Kernel{
	"floyd-steinberg": FloydSteinberg,
	"min-avg-err":     MinAvgErr,
	"burkes":          Burkes,
	"sierra-lite":     SierraLite,
	"stucki":          Stucki,
	"atkinson":        Atkinson,
}

// KernelByName 查找内置扩散核，名称不区分大小写
func KernelByName(name string) (Kernel, bool) {
	k, ok := kernels[strings.ToLower(name)]
	return k, ok
}

// KernelNames 内置扩散核名称，已排序
func KernelNames() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
