package diffutil

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 行对比的标记
const (
	MarkSame    = "|"
	MarkAdded   = "+"
	MarkRemoved = "-"
	MarkChanged = "~"
)

type DiffLine struct {
	Left  string
	Right string
	Mark  string
}

// CompareMultiline 按行对比两段文本（一般是打印出来的树）
// 相邻的 删除+插入 合并成 ~ 修改行，左右并排
func CompareMultiline(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	text1, text2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(text1, text2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result []DiffLine
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		if d.Type == diffmatchpatch.DiffDelete && i+1 < len(diffs) &&
			diffs[i+1].Type == diffmatchpatch.DiffInsert {
			result = append(result, pairLines(splitLines(d.Text), splitLines(diffs[i+1].Text))...)
			i++
			continue
		}

		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result = append(result, DiffLine{Left: line, Right: line, Mark: MarkSame})
			case diffmatchpatch.DiffDelete:
				result = append(result, DiffLine{Left: line, Mark: MarkRemoved})
			case diffmatchpatch.DiffInsert:
				result = append(result, DiffLine{Right: line, Mark: MarkAdded})
			}
		}
	}
	return result
}

func pairLines(removed, added []string) []DiffLine {
	n := max(len(removed), len(added))
	out := make([]DiffLine, 0, n)
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(removed) {
			l = removed[i]
		}
		if i < len(added) {
			r = added[i]
		}
		mark := MarkChanged
		switch {
		case i >= len(removed):
			mark = MarkAdded
		case i >= len(added):
			mark = MarkRemoved
		}
		out = append(out, DiffLine{Left: l, Right: r, Mark: mark})
	}
	return out
}

// 去掉空行，树的打印里空行没有意义
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Changed 是否有任何不同
func Changed(diff []DiffLine) bool {
	for _, d := range diff {
		if d.Mark != MarkSame {
			return true
		}
	}
	return false
}

// FormatSideBySide 左右并排输出
// fmt 的 %-*s 按字符数补齐，而中文和制表符的显示宽度不一样
// 所以补齐宽度 = 字符数 + (最大显示宽度 - 当前行显示宽度)
func FormatSideBySide(diff []DiffLine) string {
	// 模糊宽度字符（比如 │ ┌）按宽度 1 计算
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false

	width := runewidth.StringWidth("* Before")
	for _, d := range diff {
		width = max(width, cond.StringWidth(d.Left))
	}

	pad := func(s string) string {
		return s + strings.Repeat(" ", width-cond.StringWidth(s))
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  %s  %s", pad("* Before"), " ", "* After")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", cond.StringWidth(header)))
	for _, d := range diff {
		fmt.Fprintf(&b, "\n%s  %s  %s", pad(d.Left), d.Mark, d.Right)
	}
	return b.String()
}

// ShapeDiff 一步到位：对比两次打印结果，返回并排文本
func ShapeDiff(before, after string) string {
	return FormatSideBySide(CompareMultiline(before, after))
}
