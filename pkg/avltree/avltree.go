package avltree

import (
	"fmt"

	"avl_tool/pkg/logutil"
	"avl_tool/pkg/treeprinter"

	"github.com/mohae/deepcopy"
)

// Node AVL 树节点，Height 是缓存的子树高度（叶子为 1，空节点为 0）
// 字段导出是为了 deepcopy 和打印/导出包能直接访问
type Node struct {
	Key    int
	Height int
	Left   *Node
	Right  *Node
}

// Tree 持有唯一的根节点，所有修改都把新的根写回来
type Tree struct {
	root *Node
	size int
}

func New() *Tree {
	return &Tree{}
}

func (t *Tree) Root() *Node { return t.root }
func (t *Tree) Len() int    { return t.size }
func (t *Tree) Height() int { return Height(t.root) }
func (t *Tree) Empty() bool { return t.root == nil }

// Insert 插入 key，已存在时什么都不做，返回是否真正插入
func (t *Tree) Insert(key int) bool {
	var added bool
	t.root, added = Insert(t.root, key)
	if added {
		t.size++
	}
	return added
}

// Delete 删除 key，不存在时什么都不做，返回是否真正删除
func (t *Tree) Delete(key int) bool {
	var removed bool
	t.root, removed = Delete(t.root, key)
	if removed {
		t.size--
	}
	return removed
}

func (t *Tree) Search(key int) bool {
	return Search(t.root, key)
}

func (t *Tree) Validate() error {
	return Validate(t.root)
}

func (t *Tree) IsBalanced() bool {
	return IsBalanced(t.root)
}

// Clone 深拷贝整棵树，修改副本不会影响原树
func (t *Tree) Clone() *Tree {
	if t.root == nil {
		return New()
	}
	return &Tree{root: deepcopy.Copy(t.root).(*Node), size: t.size}
}

func (t *Tree) PrintTree(style treeprinter.Style, direction treeprinter.Direction) string {
	return Print(t.root, style, direction)
}

// Print 横向打印，节点显示为 key(h=高度)
func Print(root *Node, style treeprinter.Style, direction treeprinter.Direction) string {
	return treeprinter.Print(treeprinter.Printer[*Node]{
		Root: root,
		Child: func(n *Node, s treeprinter.Side) *Node {
			if s == treeprinter.Left {
				return n.Left
			}
			return n.Right
		},
		Label: func(n *Node) string {
			return fmt.Sprintf("%d(h=%d)", n.Key, n.Height)
		},
		IsNil:     func(n *Node) bool { return n == nil },
		Style:     style,
		Direction: direction,
	})
}

func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Height
}

func BalanceFactor(n *Node) int {
	if n == nil {
		return 0
	}
	return Height(n.Left) - Height(n.Right)
}

func updateHeight(n *Node) {
	n.Height = max(Height(n.Left), Height(n.Right)) + 1
}

// RotateRight 以 y 为轴右旋，y.Left 必须存在，否则原样返回
//
//	    y          x
//	   / \        / \
//	  x   C  =>  A   y
//	 / \            / \
//	A   B          B   C
func RotateRight(y *Node) *Node {
	if y == nil || y.Left == nil {
		return y
	}
	x := y.Left
	y.Left = x.Right
	x.Right = y
	updateHeight(y)
	updateHeight(x)
	logutil.Debug("右旋: %d -> %d", y.Key, x.Key)
	return x
}

// RotateLeft 以 x 为轴左旋，x.Right 必须存在，否则原样返回
func RotateLeft(x *Node) *Node {
	if x == nil || x.Right == nil {
		return x
	}
	y := x.Right
	x.Right = y.Left
	y.Left = x
	updateHeight(x)
	updateHeight(y)
	logutil.Debug("左旋: %d -> %d", x.Key, y.Key)
	return y
}

// Rebalance 按孩子自身的平衡因子符号选择四种旋转之一
// 插入和删除共用这一套判断，删除时没有“新插入的 key”可以比较
func Rebalance(n *Node) *Node {
	bf := BalanceFactor(n)

	if bf > 1 {
		if BalanceFactor(n.Left) < 0 { // LR
			n.Left = RotateLeft(n.Left)
		}
		return RotateRight(n) // LL
	}
	if bf < -1 {
		if BalanceFactor(n.Right) > 0 { // RL
			n.Right = RotateRight(n.Right)
		}
		return RotateLeft(n) // RR
	}
	return n
}

// Insert 递归插入，返回新的子树根以及是否真正插入了节点
func Insert(n *Node, key int) (*Node, bool) {
	if n == nil {
		return &Node{Key: key, Height: 1}, true
	}

	var added bool
	switch {
	case key < n.Key:
		n.Left, added = Insert(n.Left, key)
	case key > n.Key:
		n.Right, added = Insert(n.Right, key)
	default:
		// 重复的 key 直接忽略
		return n, false
	}
	if !added {
		return n, false
	}

	updateHeight(n)
	return Rebalance(n), true
}

// Delete 递归删除，返回新的子树根以及是否真正删除了节点
func Delete(n *Node, key int) (*Node, bool) {
	if n == nil {
		return nil, false
	}

	var removed bool
	switch {
	case key < n.Key:
		n.Left, removed = Delete(n.Left, key)
	case key > n.Key:
		n.Right, removed = Delete(n.Right, key)
	default:
		removed = true
		if n.Left == nil || n.Right == nil {
			// 最多一个孩子：直接用孩子顶替自己，不拷贝孩子的内容
			child := n.Left
			if child == nil {
				child = n.Right
			}
			n.Left, n.Right = nil, nil
			return child, true
		}
		// 两个孩子：拿右子树最小的节点（中序后继）的 key 顶上，再去右子树删掉它
		successor := Min(n.Right)
		n.Key = successor.Key
		n.Right, _ = Delete(n.Right, successor.Key)
	}
	if !removed {
		return n, false
	}

	updateHeight(n)
	return Rebalance(n), true
}

// Find 迭代查找，找不到返回 nil
func Find(n *Node, key int) *Node {
	for n != nil {
		switch {
		case key < n.Key:
			n = n.Left
		case key > n.Key:
			n = n.Right
		default:
			return n
		}
	}
	return nil
}

func Search(n *Node, key int) bool {
	return Find(n, key) != nil
}

// Min 最左边的节点，空树返回 nil
func Min(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Left != nil {
		n = n.Left
	}
	return n
}

// Max 最右边的节点，空树返回 nil
func Max(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Right != nil {
		n = n.Right
	}
	return n
}
