package format

import (
	"fmt"
	"sort"
)

// ConverterManager 转换器管理器
type ConverterManager struct {
	converters map[string]Converter
}

// NewConverterManager 创建新的转换器管理器
func NewConverterManager() *ConverterManager {
	manager := &ConverterManager{
		converters: make(map[string]Converter),
	}

	// 注册内置转换器
	manager.RegisterConverter(NewLitematicConverter())
	manager.RegisterConverter(NewMapConverter())
	manager.RegisterConverter(NewPreviewConverter())

	return manager
}

// RegisterConverter 按格式名称注册转换器
func (cm *ConverterManager) RegisterConverter(converter Converter) {
	cm.converters[converter.GetFormatName()] = converter
}

// GetConverter 获取指定格式的转换器
func (cm *ConverterManager) GetConverter(formatName string) (Converter, error) {
	converter, exists := cm.converters[formatName]
	if !exists {
		return nil, fmt.Errorf("不支持的格式: %s", formatName)
	}
	return converter, nil
}

// GetAvailableFormats 获取所有可用格式，已排序
func (cm *ConverterManager) GetAvailableFormats() []string {
	formats := make([]string, 0, len(cm.converters))
	for formatName := range cm.converters {
		formats = append(formats, formatName)
	}
	sort.Strings(formats)
	return formats
}
