package layout

// blockSize 返回文本块尺寸：宽度为有内容的行右边界最大值（空行的缩进不计），
// 高度为最后一个非零高度行的下边界。
func blockSize(lines []Line) (width, height float64) {
	for _, ln := range lines {
		if ln.Rect.Width > 0 {
			width = max(width, ln.Rect.Right())
		}
		if ln.Rect.Height > 0 {
			height = ln.Rect.Bottom()
		}
	}
	return width, height
}

// offsets 记录对齐施加的位移：每行一个 dx，全局一个 dy。
type offsets struct {
	dx []float64
	dy float64
}

// alignLines 计算一个全局偏移并应用到每一行；水平方向还会考虑每行自身的宽度。
func alignLines(lines []Line, opts Options, multiple float64) offsets {
	off := offsets{dx: make([]float64, len(lines))}
	if len(lines) == 0 {
		return off
	}
	blockW, blockH := blockSize(lines)
	boxW, boxH := opts.Width, opts.Height
	if boxW <= 0 {
		boxW = blockW
	}

	// 行高倍数放大了首行基线上方的空白，这部分不属于墨迹。
	// 居中和底对齐都按墨迹高度计算，再把行矩形上移 extra 还原。
	extra := 0.0
	if len(lines) > 1 && multiple != 1 && multiple > 0 {
		first := lines[0]
		extra = first.LargestAscent - first.LargestAscent/multiple
	}
	inkH := blockH - extra

	// 没有给定高度时不做垂直对齐
	dy := 0.0
	switch {
	case boxH <= 0:
	case opts.VAlign == AlignMiddle:
		dy = (boxH-inkH)/2 - extra
	case opts.VAlign == AlignBottom:
		dy = boxH - inkH - extra
	}

	for i := range lines {
		ln := &lines[i]
		dx := 0.0
		switch opts.HAlign {
		case AlignCenter:
			dx = (boxW - ln.Rect.Right()) / 2
		case AlignRight:
			dx = boxW - ln.Rect.Right()
		}
		ln.Rect.X += dx
		ln.Rect.Y += dy
		for j := range ln.Runs {
			ln.Runs[j].X += dx
			ln.Runs[j].Baseline += dy
		}
		off.dx[i] = dx
	}
	off.dy = dy
	return off
}
