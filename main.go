package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/textflow/config"
	"github.com/ByLCY/textflow/layout"
	"github.com/ByLCY/textflow/markup"
	"github.com/ByLCY/textflow/renderer"
	canvasrenderer "github.com/ByLCY/textflow/renderer/canvas"
	"github.com/ByLCY/textflow/renderer/cells"
)

func main() {
	input := flag.String("in", "examples/demo.txt", "标记文本文件路径")
	output := flag.String("out", "output/demo.pdf", "输出路径（canvas 后端为 PDF，cells 后端为纯文本）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	glyphs := flag.Bool("debug-glyphs", false, "在调试 JSON 中包含逐字字形")
	dataJSON := flag.String("data", "", "绑定到标记文本的 JSON 数据")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("读取配置失败", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			logger.Error("解析 data JSON 失败", "err", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, logger, *input, *output, *debug, *glyphs, inputData); err != nil {
		logger.Error("排版失败", "err", err)
		os.Exit(1)
	}
	logger.Info("已生成输出", "path", *output, "backend", cfg.Backend)
}

// run 串联解析、排版与渲染。
func run(cfg *config.Config, logger *slog.Logger, inputPath, outputPath, debugPath string, withGlyphs bool, data any) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开输入文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	st, err := markup.Read(file, data)
	if err != nil {
		return err
	}
	cfg.Apply(st)

	ts, r := backend(cfg, logger, inputPath)
	l := layout.New(st, ts, cfg.Options(logger))

	if debugPath != "" {
		if err := writeDebug(l, debugPath, withGlyphs); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	out, err := r.Render(l)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

// backend 按配置选择排版后端与渲染器，两者必须共享字体状态。
func backend(cfg *config.Config, logger *slog.Logger, inputPath string) (layout.Typesetter, renderer.Renderer) {
	if cfg.Backend == "cells" {
		r := cells.NewRenderer(cells.NewTypesetter(cfg.EastAsian))
		return r.Typesetter(), r
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: filepath.Dir(inputPath),
		Margin:  cfg.MarginMM(),
		Title:   strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)),
		Logger:  logger,
	})
	return r.Typesetter(), r
}

func writeDebug(l *layout.Layout, debugPath string, withGlyphs bool) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(l, debugPath, withGlyphs); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
