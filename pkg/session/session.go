// Package session 保存一次会话里的两棵树和显示配置
// 所有操作都挂在 Session 上，没有包级别的全局树
package session

import (
	"fmt"
	"strings"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/bintree"
	"avl_tool/pkg/bracket"
	"avl_tool/pkg/diffutil"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/logutil"
	"avl_tool/pkg/seed"
	"avl_tool/pkg/toolutil"
	"avl_tool/pkg/treeprinter"

	"github.com/dustin/go-humanize"
)

var (
	ErrNoPlainTree = &errorutil.ExitErrorWithCode{
		Code:    errorutil.CodeMissingInput,
		Message: "还没有加载普通二叉树，请先从文件读取",
	}
	ErrNoAVLTree = &errorutil.ExitErrorWithCode{
		Code:    errorutil.CodeMissingInput,
		Message: "还没有 AVL 树，请先转换",
	}
)

type Config struct {
	SeedOrder avltree.Order
	Style     treeprinter.Style
	Direction treeprinter.Direction
	ShowDiff  bool // 插入删除后是否给出前后对比
}

func DefaultConfig() Config {
	return Config{
		SeedOrder: avltree.OrderPre,
		Style:     treeprinter.Unicode,
		Direction: treeprinter.RightRootLeft,
		ShowDiff:  true,
	}
}

type Session struct {
	plain  *bintree.Node
	source string // 读到的原始括号表示法
	avl    *avltree.Tree
	cfg    Config
}

func New(cfg Config) *Session {
	return &Session{cfg: cfg}
}

func (s *Session) Config() Config       { return s.cfg }
func (s *Session) Source() string       { return s.source }
func (s *Session) Plain() *bintree.Node { return s.plain }
func (s *Session) AVL() *avltree.Tree   { return s.avl }
func (s *Session) HasPlain() bool       { return s.plain != nil }
func (s *Session) HasAVL() bool         { return s.avl != nil }
func (s *Session) SetConfig(cfg Config) { s.cfg = cfg }

func (s *Session) print(t *avltree.Tree) string {
	return t.PrintTree(s.cfg.Style, s.cfg.Direction)
}

// LoadFile 从文件第一行读取普通二叉树；失败时保留原来的树
func (s *Session) LoadFile(path string) error {
	root, line, err := bracket.LoadFile(path)
	if err != nil {
		logutil.Warn("加载 %s 失败: %v", path, err)
		return err
	}
	s.setPlain(root, line)
	logutil.Info("从 %s 加载了 %d 个节点", path, bintree.Count(root))
	return nil
}

// LoadString 直接解析一行括号表示法
func (s *Session) LoadString(line string) error {
	root, err := bracket.Parse(line)
	if err != nil {
		logutil.Warn("解析失败: %v", err)
		return err
	}
	s.setPlain(root, strings.TrimSpace(line))
	logutil.Info("加载了 %d 个节点", bintree.Count(root))
	return nil
}

func (s *Session) setPlain(root *bintree.Node, line string) {
	s.plain = root
	s.source = line
}

// Seed 按配置的顺序把普通二叉树转换成新的 AVL 树，覆盖旧的 AVL 树
func (s *Session) Seed() (seed.Result, error) {
	if s.plain == nil {
		return seed.Result{}, ErrNoPlainTree
	}
	res, err := seed.Seed(s.plain, s.cfg.SeedOrder)
	if err != nil {
		return seed.Result{}, err
	}
	s.avl = res.Tree
	return res, nil
}

// SeedKeys 不经过普通二叉树，直接用给定序列建 AVL 树
func (s *Session) SeedKeys(keys []int) seed.Result {
	res := seed.FromKeys(keys)
	s.avl = res.Tree
	return res
}

// Change 一次插入或删除的结果
type Change struct {
	Key      int
	Applied  bool   // false: 插入时已存在，或删除时不存在
	Balanced bool   // 操作后整棵树是否仍然平衡
	Diff     string // 前后形状对比，关闭 ShowDiff 或没有变化时为空
}

func (s *Session) mutate(key int, op func(*avltree.Tree) bool) (Change, error) {
	if s.avl == nil {
		return Change{}, ErrNoAVLTree
	}

	var before *avltree.Tree
	if s.cfg.ShowDiff {
		before = s.avl.Clone()
	}

	ch := Change{Key: key, Applied: op(s.avl)}
	ch.Balanced = s.avl.IsBalanced()
	if !ch.Balanced {
		logutil.Warn("操作 %d 之后树不平衡", key)
	}
	if ch.Applied && before != nil {
		ch.Diff = s.Diff(before, s.avl)
	}
	return ch, nil
}

func (s *Session) Insert(key int) (Change, error) {
	return s.mutate(key, func(t *avltree.Tree) bool { return t.Insert(key) })
}

// Delete key 不存在时 Applied 为 false，不算错误
func (s *Session) Delete(key int) (Change, error) {
	return s.mutate(key, func(t *avltree.Tree) bool { return t.Delete(key) })
}

func (s *Session) Search(key int) (bool, error) {
	if s.avl == nil {
		return false, ErrNoAVLTree
	}
	return s.avl.Search(key), nil
}

// Validate 返回 *avltree.Violation 或者 nil
func (s *Session) Validate() error {
	if s.avl == nil {
		return ErrNoAVLTree
	}
	return s.avl.Validate()
}

func (s *Session) Traverse(order avltree.Order) ([]int, error) {
	if s.avl == nil {
		return nil, ErrNoAVLTree
	}
	return s.avl.Traverse(order)
}

// Traversal 一种遍历的结果
type Traversal struct {
	Order avltree.Order
	Keys  []int
}

func (t Traversal) String() string {
	return fmt.Sprintf("%s: %s", t.Order.Title(), toolutil.JoinInts(t.Keys, " "))
}

// Traversals 四种遍历一起做
func (s *Session) Traversals() ([]Traversal, error) {
	if s.avl == nil {
		return nil, ErrNoAVLTree
	}
	var res []Traversal
	for _, o := range avltree.Orders() {
		keys, err := s.avl.Traverse(o)
		if err != nil {
			return nil, err
		}
		res = append(res, Traversal{Order: o, Keys: keys})
	}
	return res, nil
}

// ShowPlain 原始输入、横向打印的普通二叉树和它的先序序列
func (s *Session) ShowPlain() (string, error) {
	if s.plain == nil {
		return "", ErrNoPlainTree
	}
	var b strings.Builder
	fmt.Fprintf(&b, "输入: %s\n", s.source)
	if norm := bintree.Format(s.plain); norm != s.source {
		fmt.Fprintf(&b, "规范形式: %s\n", norm)
	}
	b.WriteString(bintree.PrintTree(s.plain, s.cfg.Style, s.cfg.Direction))
	fmt.Fprintf(&b, "DFS: %s\n", toolutil.JoinInts(bintree.PreOrder(s.plain), " "))
	fmt.Fprintf(&b, "节点数: %d  深度: %d\n", bintree.Count(s.plain), bintree.Depth(s.plain))
	return b.String(), nil
}

func (s *Session) ShowAVL() (string, error) {
	if s.avl == nil {
		return "", ErrNoAVLTree
	}
	return s.print(s.avl), nil
}

// Diff 两棵树打印结果的并排对比
func (s *Session) Diff(before, after *avltree.Tree) string {
	return diffutil.ShapeDiff(s.print(before), s.print(after))
}

type Stats struct {
	Nodes  int
	Height int
	Min    int
	Max    int
}

func (st Stats) String() string {
	if st.Nodes == 0 {
		return "节点数: 0"
	}
	return fmt.Sprintf("节点数: %s  高度: %d  最小: %d  最大: %d",
		humanize.Comma(int64(st.Nodes)), st.Height, st.Min, st.Max)
}

func (s *Session) Stats() (Stats, error) {
	if s.avl == nil {
		return Stats{}, ErrNoAVLTree
	}
	st := Stats{Nodes: s.avl.Len(), Height: s.avl.Height()}
	if n := avltree.Min(s.avl.Root()); n != nil {
		st.Min = n.Key
	}
	if n := avltree.Max(s.avl.Root()); n != nil {
		st.Max = n.Key
	}
	return st, nil
}
