package dither

import (
	"fmt"
	"strings"
)

// Ordered3x3 固定的 3×3 阈值矩阵
var Ordered3x3 = [][]int{
	{1, 7, 4},
	{5, 8, 3},
	{6, 2, 9},
}

// Bayer 生成 2^power 边长的 Bayer 矩阵，取值为 1..4^power 的排列。power 只能是 1 到 4
func Bayer(power int) ([][]int, error) {
	if power < 1 || power > 4 {
		return nil, fmt.Errorf("%w: bayer power %d not in 1..4", ErrInvalidMatrix, power)
	}
	m := [][]int{{0, 2}, {3, 1}}
	for p := 1; p < power; p++ {
		n := len(m)
		next := make([][]int, n*2)
		for y := range next {
			next[y] = make([]int, n*2)
		}
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				v := m[y][x] * 4
				next[y][x] = v
				next[y][x+n] = v + 2
				next[y+n][x] = v + 3
				next[y+n][x+n] = v + 1
			}
		}
		m = next
	}
	for _, row := range m {
		for x := range row {
			row[x]++
		}
	}
	return m, nil
}

// OrderedByName 支持 ordered3x3 与 bayer2/bayer4/bayer8/bayer16
func OrderedByName(name string) ([][]int, bool) {
	switch strings.ToLower(name) {
	case "ordered3x3":
		return Ordered3x3, true
	case "bayer2":
		m, _ := Bayer(1)
		return m, true
	case "bayer4":
		m, _ := Bayer(2)
		return m, true
	case "bayer8":
		m, _ := Bayer(3)
		return m, true
	case "bayer16":
		m, _ := Bayer(4)
		return m, true
	}
	return nil, false
}

func validateMatrix(m [][]int) error {
	if len(m) == 0 || len(m[0]) == 0 {
		return ErrInvalidMatrix
	}
	for _, row := range m {
		if len(row) != len(m[0]) {
			return fmt.Errorf("%w: ragged rows", ErrInvalidMatrix)
		}
	}
	return nil
}
