package diffutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareMultilineSame(t *testing.T) {
	text := "    ┌──>30(h=1)\n│── 20(h=2)\n    └──>10(h=1)\n"
	diff := CompareMultiline(text, text)

	require.Len(t, diff, 3)
	assert.False(t, Changed(diff))
	for _, d := range diff {
		assert.Equal(t, MarkSame, d.Mark)
		assert.Equal(t, d.Left, d.Right)
	}
}

func TestCompareMultilineModified(t *testing.T) {
	before := "┌──>86(h=1)\n│   └──>84(h=1)\n└──>80(h=3)\n"
	after := "┌──>86(h=1)\n│   └──>85(h=2)\n└──>80(h=3)\n"

	diff := CompareMultiline(before, after)
	t.Log("\n" + FormatSideBySide(diff))

	require.Len(t, diff, 3)
	assert.True(t, Changed(diff))
	assert.Equal(t, DiffLine{Left: "│   └──>84(h=1)", Right: "│   └──>85(h=2)", Mark: MarkChanged}, diff[1])
}

func TestCompareMultilineAdded(t *testing.T) {
	diff := CompareMultiline("|-- 1(h=1)\n", "|-- 1(h=2)\n    '-->0(h=1)\n")
	assert.True(t, Changed(diff))

	var marks []string
	for _, d := range diff {
		marks = append(marks, d.Mark)
	}
	assert.Equal(t, []string{MarkChanged, MarkAdded}, marks)
}

func TestFormatSideBySideAlignsWideRunes(t *testing.T) {
	diff := []DiffLine{
		{Left: "你好", Right: "你好", Mark: MarkSame},
		{Left: "ab", Right: "cd", Mark: MarkChanged},
	}
	out := FormatSideBySide(diff)
	t.Log("\n" + out)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	// 标记列要对齐：两行中标记前面的显示宽度一致
	assert.Equal(t, "* Before     * After", lines[0])
	assert.Equal(t, "你好      |  你好", lines[2])
	assert.Equal(t, "ab        ~  cd", lines[3])
}

func TestShapeDiff(t *testing.T) {
	out := ShapeDiff("a\n", "b\n")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a         ~  b", lines[2])
}
