// Package treejson 把树和遍历结果输出成 JSON
package treejson

import (
	"fmt"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/bintree"
	"avl_tool/pkg/errorutil"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

type Format string

const (
	FormatOne Format = "one"
	FormatMul Format = "mul"
)

// 为了让 VarP 接收自定义类型，实现 pflag.Value 接口(String Set Type)
func (f *Format) String() string { return string(*f) }

func (f *Format) Set(val string) error {
	switch val {
	case string(FormatMul), string(FormatOne):
		*f = Format(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *Format) Type() string {
	return "jsonformat"
}

// 列出所有的合法值
func (Format) Values() []string {
	return []string{string(FormatMul), string(FormatOne)}
}

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "    ", SortKeys: false}

// Render 一行或者多行美化输出
func Render(raw string, f Format) string {
	if f == FormatOne {
		return string(pretty.Ugly([]byte(raw)))
	}
	return string(pretty.PrettyOptions([]byte(raw), prettyOptions))
}

type field struct {
	name  string
	value any
}

// object 描述怎么把一个节点变成 JSON 对象
type object[T any] struct {
	root   T
	isNil  func(T) bool
	fields func(T) []field
	left   func(T) T
	right  func(T) T
}

// build 先在父节点里放好 {} 或 null，再往里面填字段，这样 key 的顺序固定
func build[T any](obj object[T]) (string, error) {
	if obj.isNil(obj.root) {
		return "null", nil
	}

	type entry struct {
		node T
		path string // 空串表示根，否则以 . 结尾
	}

	doc := "{}"
	var err error
	stack := arraystack.New()
	stack.Push(entry{node: obj.root})
	for !stack.Empty() {
		v, _ := stack.Pop()
		e := v.(entry)

		for _, f := range obj.fields(e.node) {
			if doc, err = sjson.Set(doc, e.path+f.name, f.value); err != nil {
				return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
		}

		children := []struct {
			name string
			node T
		}{{"left", obj.left(e.node)}, {"right", obj.right(e.node)}}
		for i := range children {
			raw := "{}"
			if obj.isNil(children[i].node) {
				raw = "null"
			}
			if doc, err = sjson.SetRaw(doc, e.path+children[i].name, raw); err != nil {
				return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			if !obj.isNil(children[i].node) {
				stack.Push(entry{node: children[i].node, path: e.path + children[i].name + "."})
			}
		}
	}
	return doc, nil
}

// AVL 每个节点 {"key","height","balance","left","right"}，空孩子为 null
func AVL(root *avltree.Node, f Format) (string, error) {
	doc, err := build(object[*avltree.Node]{
		root:  root,
		isNil: func(n *avltree.Node) bool { return n == nil },
		fields: func(n *avltree.Node) []field {
			return []field{
				{"key", n.Key},
				{"height", n.Height},
				{"balance", avltree.BalanceFactor(n)},
			}
		},
		left:  func(n *avltree.Node) *avltree.Node { return n.Left },
		right: func(n *avltree.Node) *avltree.Node { return n.Right },
	})
	if err != nil {
		return "", err
	}
	return Render(doc, f), nil
}

// Plain 每个节点 {"value","left","right"}
func Plain(root *bintree.Node, f Format) (string, error) {
	doc, err := build(object[*bintree.Node]{
		root:   root,
		isNil:  func(n *bintree.Node) bool { return n == nil },
		fields: func(n *bintree.Node) []field { return []field{{"value", n.Value}} },
		left:   func(n *bintree.Node) *bintree.Node { return n.Left },
		right:  func(n *bintree.Node) *bintree.Node { return n.Right },
	})
	if err != nil {
		return "", err
	}
	return Render(doc, f), nil
}

// Traversals 按 avltree.Orders() 的顺序输出，没有给出的顺序跳过
func Traversals(res map[avltree.Order][]int, f Format) (string, error) {
	doc := "{}"
	var err error
	for _, o := range avltree.Orders() {
		keys, ok := res[o]
		if !ok {
			continue
		}
		if keys == nil {
			keys = []int{}
		}
		if doc, err = sjson.Set(doc, string(o), keys); err != nil {
			return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
		}
	}
	return Render(doc, f), nil
}

// Keys 从 Traversals 的输出里读回某一种遍历
func Keys(raw string, order avltree.Order) ([]int, error) {
	if !gjson.Valid(raw) {
		return nil, errorutil.Newf(errorutil.CodeInvalidData, "输入内容不是有效的 JSON")
	}
	res := gjson.Get(raw, string(order))
	if !res.Exists() {
		return nil, errorutil.Newf(errorutil.CodeInvalidData, "字段 %q 不存在", order)
	}
	if !res.IsArray() {
		return nil, errorutil.Newf(errorutil.CodeInvalidData, "字段 %q 不是数组", order)
	}

	keys := []int{}
	var bad error
	res.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.Number {
			bad = errorutil.Newf(errorutil.CodeInvalidData, "字段 %q 里有非数字 %s", order, v.Raw)
			return false
		}
		keys = append(keys, int(v.Int()))
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return keys, nil
}
