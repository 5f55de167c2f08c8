package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/ByLCY/textflow/layout"
)

// Config 从 TEXTFLOW_* 环境变量读取排版参数。长度均可带单位（mm/cm/in/pt/px），
// canvas 后端下无单位的数值按 mm 处理，cells 后端下按字符格处理。
type Config struct {
	Backend     string  `envconfig:"TEXTFLOW_BACKEND" default:"canvas"`
	Width       string  `envconfig:"TEXTFLOW_WIDTH" default:"0"`
	Height      string  `envconfig:"TEXTFLOW_HEIGHT" default:"0"`
	NoWrap      bool    `envconfig:"TEXTFLOW_NO_WRAP" default:"false"`
	FontFamily  string  `envconfig:"TEXTFLOW_FONT_FAMILY" default:"Go"`
	FontSize    string  `envconfig:"TEXTFLOW_FONT_SIZE" default:"12pt"`
	LineHeight  string  `envconfig:"TEXTFLOW_LINE_HEIGHT" default:"1"`
	FirstIndent string  `envconfig:"TEXTFLOW_FIRST_INDENT" default:"0"`
	Indent      string  `envconfig:"TEXTFLOW_INDENT" default:"0"`
	HAlign      string  `envconfig:"TEXTFLOW_HALIGN" default:"left"`
	VAlign      string  `envconfig:"TEXTFLOW_VALIGN" default:"top"`
	DPI         float64 `envconfig:"TEXTFLOW_DPI" default:"72"`
	Margin      string  `envconfig:"TEXTFLOW_MARGIN" default:"10mm"`
	EastAsian   bool    `envconfig:"TEXTFLOW_EAST_ASIAN" default:"false"`
	LogLevel    string  `envconfig:"TEXTFLOW_LOG_LEVEL" default:"info"`
}

// Load 读取环境变量并校验取值。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("读取环境变量失败: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "canvas", "cells":
	default:
		return fmt.Errorf("不支持的后端 %q（可选 canvas、cells）", c.Backend)
	}
	if c.fontSize() <= 0 {
		return fmt.Errorf("无效的字号 %q", c.FontSize)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("无效的 DPI %g", c.DPI)
	}
	return nil
}

// Length 把长度字符串换算为当前后端的排版单位。
func (c *Config) Length(v string) float64 {
	l := layout.ParseLength(v)
	if c.Backend == "cells" {
		return l.Value
	}
	return l.To(layout.UnitMM, c.DPI)
}

// MarginMM 返回页边距（mm）。
func (c *Config) MarginMM() float64 { return layout.ParseLength(c.Margin).To(layout.UnitMM, c.DPI) }

func (c *Config) fontSize() float64 {
	l := layout.ParseLength(c.FontSize)
	if l.Unit == layout.UnitNone {
		return l.Value
	}
	return l.To(layout.UnitPT, c.DPI)
}

// Options 生成排版选项。
func (c *Config) Options(logger *slog.Logger) layout.Options {
	return layout.Options{
		Width:      c.Length(c.Width),
		Height:     c.Length(c.Height),
		NoWrap:     c.NoWrap,
		HAlign:     layout.ParseHAlign(c.HAlign),
		VAlign:     layout.ParseVAlign(c.VAlign),
		Resolution: c.DPI,
		Logger:     logger,
		Defaults: layout.Style{
			Family: layout.Set(c.FontFamily),
			Size:   layout.Set(c.fontSize()),
		},
	}
}

// Apply 把行高与缩进写入样式文本。
func (c *Config) Apply(st *layout.StyledText) {
	st.LineHeightMultiple = layout.ParseLineHeight(c.LineHeight, c.fontSize())
	st.FirstLineIndent = c.Length(c.FirstIndent)
	st.Indent = c.Length(c.Indent)
}

// Level 解析日志级别，无法识别时返回 Info。
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
