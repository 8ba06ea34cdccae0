// Package treedot 把二叉树导出成 Graphviz DOT，并能把 DOT 读回来检查是不是一棵树
package treedot

import (
	"fmt"
	"sort"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/bintree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/treeprinter"

	"github.com/awalterschulze/gographviz"
	"github.com/emirpasic/gods/stacks/arraystack"
)

const invis = "invis"

// source 和 treeprinter.Printer 一样，用函数描述怎么访问一棵树
type source[T any] struct {
	name  string
	root  T
	child func(T, treeprinter.Side) T
	isNil func(T) bool
	label func(T) string
}

func AVL(root *avltree.Node) (string, error) {
	return build(source[*avltree.Node]{
		name: "AVL",
		root: root,
		child: func(n *avltree.Node, s treeprinter.Side) *avltree.Node {
			if s == treeprinter.Left {
				return n.Left
			}
			return n.Right
		},
		isNil: func(n *avltree.Node) bool { return n == nil },
		label: func(n *avltree.Node) string {
			return fmt.Sprintf("%d(h=%d)", n.Key, n.Height)
		},
	})
}

func Plain(root *bintree.Node) (string, error) {
	return build(source[*bintree.Node]{
		name: "Plain",
		root: root,
		child: func(n *bintree.Node, s treeprinter.Side) *bintree.Node {
			if s == treeprinter.Left {
				return n.Left
			}
			return n.Right
		},
		isNil: func(n *bintree.Node) bool { return n == nil },
		label: func(n *bintree.Node) string { return fmt.Sprintf("%d", n.Value) },
	})
}

// build 先序给节点编号 n0 n1 ...，只有一个孩子时另一边补一个看不见的点，
// 这样 dot 排版时左右位置不会乱
func build[T any](src source[T]) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(src.name); err != nil {
		return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	if err := g.AddAttr(src.name, "ordering", "out"); err != nil {
		return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	if src.isNil(src.root) {
		return g.String(), nil
	}

	type entry struct {
		node T
		id   string
	}

	seq, holes := 0, 0
	nextID := func() string {
		id := fmt.Sprintf("n%d", seq)
		seq++
		return id
	}

	addNode := func(n T) (string, error) {
		id := nextID()
		err := g.AddNode(src.name, id, map[string]string{
			"label": fmt.Sprintf("%q", src.label(n)),
			"shape": "circle",
		})
		return id, err
	}

	rootID, err := addNode(src.root)
	if err != nil {
		return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}

	stack := arraystack.New()
	stack.Push(entry{node: src.root, id: rootID})
	for !stack.Empty() {
		v, _ := stack.Pop()
		e := v.(entry)

		left, right := src.child(e.node, treeprinter.Left), src.child(e.node, treeprinter.Right)
		if src.isNil(left) && src.isNil(right) {
			continue
		}

		// 先左后右加边，入栈时反过来保证先序编号
		var pending []entry
		for _, c := range []T{left, right} {
			if src.isNil(c) {
				hole := fmt.Sprintf("hole%d", holes)
				holes++
				if err := g.AddNode(src.name, hole, map[string]string{"style": invis, "shape": "point"}); err != nil {
					return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
				}
				if err := g.AddEdge(e.id, hole, true, map[string]string{"style": invis}); err != nil {
					return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
				}
				continue
			}
			id, err := addNode(c)
			if err != nil {
				return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
			if err := g.AddEdge(e.id, id, true, nil); err != nil {
				return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
			pending = append(pending, entry{node: c, id: id})
		}
		for i := len(pending) - 1; i >= 0; i-- {
			stack.Push(pending[i])
		}
	}
	return g.String(), nil
}

// TreeInfo CheckTree 的结果
type TreeInfo struct {
	Name         string
	Root         string
	Nodes        int // 可见节点数
	Placeholders int // 补位用的隐藏节点数
}

// CheckTree 解析 DOT，检查它描述的是一棵二叉树：
// 只有一个根，每个节点至多一个父节点、至多两个子节点，并且从根能走到所有节点（因此没有环）
func CheckTree(dot string) (TreeInfo, error) {
	ast, err := gographviz.Parse([]byte(dot))
	if err != nil {
		return TreeInfo{}, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "无法解析 DOT", err)
	}
	g := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, g); err != nil {
		return TreeInfo{}, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "无法分析 DOT", err)
	}

	info := TreeInfo{Name: g.Name}
	if len(g.Nodes.Nodes) == 0 {
		return info, nil
	}

	notTree := func(format string, args ...any) (TreeInfo, error) {
		return TreeInfo{}, errorutil.Newf(errorutil.CodeAssertionFailed, "DOT 不是一棵二叉树: "+format, args...)
	}

	adj := toAdjacencyMap(g)
	parents := make(map[string]int)
	for src, dsts := range adj {
		if len(dsts) > 2 {
			return notTree("节点 %s 有 %d 个孩子", src, len(dsts))
		}
		for _, dst := range dsts {
			parents[dst]++
		}
	}

	var roots []string
	for _, n := range g.Nodes.Nodes {
		switch parents[n.Name] {
		case 0:
			roots = append(roots, n.Name)
		case 1:
		default:
			return notTree("节点 %s 有 %d 个父节点", n.Name, parents[n.Name])
		}
		if n.Attrs[gographviz.Style] == invis {
			info.Placeholders++
		} else {
			info.Nodes++
		}
	}
	if len(roots) != 1 {
		return notTree("应该正好有一个根，实际有 %d 个 %v", len(roots), roots)
	}
	info.Root = roots[0]

	if reached := countReachable(adj, roots[0]); reached != len(g.Nodes.Nodes) {
		return notTree("从根只能走到 %d 个节点，一共 %d 个", reached, len(g.Nodes.Nodes))
	}
	return info, nil
}

// toAdjacencyMap 把 gographviz 的边表转成邻接表，目标按名字排序
func toAdjacencyMap(g *gographviz.Graph) map[string][]string {
	adj := make(map[string][]string)
	for src, dstGroup := range g.Edges.SrcToDsts {
		for _, edges := range dstGroup {
			for _, edge := range edges {
				adj[src] = append(adj[src], edge.Dst)
			}
		}
		sort.Strings(adj[src])
	}
	return adj
}

func countReachable(adj map[string][]string, start string) int {
	seen := map[string]bool{start: true}
	stack := arraystack.New()
	stack.Push(start)
	for !stack.Empty() {
		v, _ := stack.Pop()
		for _, dst := range adj[v.(string)] {
			if !seen[dst] {
				seen[dst] = true
				stack.Push(dst)
			}
		}
	}
	return len(seen)
}
