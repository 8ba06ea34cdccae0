package treeprinter

import (
	"fmt"
	"strings"
)

// Side 左右孩子
type Side int

const (
	Left Side = iota
	Right
)

// Style 0 = ascii, 1 = unicode
type Style int

const (
	ASCII   Style = 0
	Unicode Style = 1
)

// Direction 0 = 右子树在上(right-root-left), 1 = 左子树在上(left-root-right)
type Direction int

const (
	RightRootLeft Direction = 0
	LeftRootRight Direction = 1
)

const (
	visitFirst = iota
	visitReadyToPrint
	visitDone
)

const (
	branchRoot = iota
	branchUpper
	branchLower
)

// EmptyTree 空树时的输出
const EmptyTree = "tree is empty\n"

// Printer 是通用打印器的配置，T 可以是指针，也可以是数组下标
type Printer[T any] struct {
	Root      T
	Child     func(T, Side) T // 获取左右子节点
	Label     func(T) string  // 节点显示的内容
	IsNil     func(T) bool    // 判断节点是否为空
	Style     Style
	Direction Direction
}

type glyphs struct {
	vert, upper, lower, root string
}

func (s Style) glyphs() glyphs {
	if s == Unicode {
		return glyphs{vert: "│", upper: "┌──>", lower: "└──>", root: "│── "}
	}
	return glyphs{vert: "|", upper: ".-->", lower: "'-->", root: "|-- "}
}

// Print 把二叉树横着打印出来，上面一支在上，下面一支在下
// 用显式栈实现，不依赖递归，深树也不会爆栈
func Print[T any](p Printer[T]) string {
	if p.IsNil(p.Root) {
		return EmptyTree
	}

	g := p.Style.glyphs()
	upperSide, lowerSide := Right, Left
	if p.Direction == LeftRootRight {
		upperSide, lowerSide = Left, Right
	}

	// upperBlank/lowerBlank 表示孩子前缀这一列是否留空（否则画竖线）
	type frame struct {
		node       T
		branch     int
		pre        string
		upperBlank bool
		lowerBlank bool
		state      int
	}

	extend := func(pre string, blank bool) string {
		if blank {
			return pre + "    "
		}
		return pre + g.vert + "   "
	}

	stack := []frame{{node: p.Root, branch: branchRoot, upperBlank: true, lowerBlank: true}}
	var b strings.Builder

	for len(stack) > 0 {
		idx := len(stack) - 1
		top := stack[idx]

		switch top.state {
		case visitFirst:
			stack[idx].state = visitReadyToPrint
			if child := p.Child(top.node, upperSide); !p.IsNil(child) {
				stack = append(stack, frame{
					node:       child,
					branch:     branchUpper,
					pre:        extend(top.pre, top.upperBlank),
					upperBlank: true,
					lowerBlank: false,
				})
			}
		case visitReadyToPrint:
			stack[idx].state = visitDone
			label := p.Label(top.node)
			switch top.branch {
			case branchUpper:
				fmt.Fprintf(&b, "%s%s%s\n", top.pre, g.upper, label)
			case branchLower:
				fmt.Fprintf(&b, "%s%s%s\n", top.pre, g.lower, label)
			default:
				fmt.Fprintf(&b, "%s%s\n", g.root, label)
			}
		case visitDone:
			stack = stack[:idx]
			if child := p.Child(top.node, lowerSide); !p.IsNil(child) {
				stack = append(stack, frame{
					node:       child,
					branch:     branchLower,
					pre:        extend(top.pre, top.lowerBlank),
					upperBlank: false,
					lowerBlank: true,
				})
			}
		}
	}

	return b.String()
}
