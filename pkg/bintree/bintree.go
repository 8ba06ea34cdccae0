package bintree

import (
	"strconv"
	"strings"

	"avl_tool/pkg/treeprinter"

	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Node 普通二叉树节点，没有任何平衡或有序的要求
// 孩子由父节点独占，不共享、不成环，整棵树由 GC 回收
type Node struct {
	Value int
	Left  *Node
	Right *Node
}

func New(value int) *Node {
	return &Node{Value: value}
}

// walk 显式栈先序遍历，visit 拿到节点和它所在的层(根为 1)
func walk(root *Node, visit func(n *Node, depth int)) {
	if root == nil {
		return
	}
	type frame struct {
		node  *Node
		depth int
	}
	stack := arraystack.New()
	stack.Push(frame{root, 1})
	for !stack.Empty() {
		v, _ := stack.Pop()
		f := v.(frame)
		visit(f.node, f.depth)
		if f.node.Right != nil {
			stack.Push(frame{f.node.Right, f.depth + 1})
		}
		if f.node.Left != nil {
			stack.Push(frame{f.node.Left, f.depth + 1})
		}
	}
}

// PreOrder 深度优先 根-左-右 展开成序列，用来给 AVL 树喂数据
func PreOrder(root *Node) []int {
	values := []int{}
	walk(root, func(n *Node, _ int) {
		values = append(values, n.Value)
	})
	return values
}

// LevelOrder 按层从上到下、从左到右取出所有值
func LevelOrder(root *Node) []int {
	values := []int{}
	if root == nil {
		return values
	}
	queue := arrayqueue.New()
	queue.Enqueue(root)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		n := v.(*Node)
		values = append(values, n.Value)
		if n.Left != nil {
			queue.Enqueue(n.Left)
		}
		if n.Right != nil {
			queue.Enqueue(n.Right)
		}
	}
	return values
}

func Count(root *Node) int {
	count := 0
	walk(root, func(*Node, int) { count++ })
	return count
}

// Depth 空树 0，单节点 1
func Depth(root *Node) int {
	depth := 0
	walk(root, func(_ *Node, d int) { depth = max(depth, d) })
	return depth
}

// Format 输出严格的括号表示法，空孩子写成 ()，可以被 bracket.Parse 原样解析回来
func Format(root *Node) string {
	type item struct {
		node  *Node
		close bool
	}
	var b strings.Builder
	stack := arraystack.New()
	stack.Push(item{node: root})
	for !stack.Empty() {
		v, _ := stack.Pop()
		it := v.(item)
		if it.close {
			b.WriteByte(')')
			continue
		}
		b.WriteByte('(')
		stack.Push(item{close: true})
		if it.node != nil {
			b.WriteString(strconv.Itoa(it.node.Value))
			stack.Push(item{node: it.node.Right})
			stack.Push(item{node: it.node.Left})
		}
	}
	return b.String()
}

// PrintTree 横向打印
func PrintTree(root *Node, style treeprinter.Style, direction treeprinter.Direction) string {
	return treeprinter.Print(treeprinter.Printer[*Node]{
		Root: root,
		Child: func(n *Node, s treeprinter.Side) *Node {
			if s == treeprinter.Left {
				return n.Left
			}
			return n.Right
		},
		Label:     func(n *Node) string { return strconv.Itoa(n.Value) },
		IsNil:     func(n *Node) bool { return n == nil },
		Style:     style,
		Direction: direction,
	})
}
