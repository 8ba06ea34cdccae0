package avltree

import (
	"strings"

	"avl_tool/pkg/errorutil"

	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// 四种遍历全部用显式的栈/队列实现，容器按需增长，不会因为树太大丢节点

// Order 遍历顺序
type Order string

const (
	OrderPre   Order = "preorder"
	OrderIn    Order = "inorder"
	OrderPost  Order = "postorder"
	OrderLevel Order = "levelorder"
)

// 简写也认
var orderAliases = map[string]Order{
	"pre":   OrderPre,
	"in":    OrderIn,
	"post":  OrderPost,
	"level": OrderLevel,
	"bfs":   OrderLevel,
}

// Orders 菜单里展示的顺序：广度优先在前，和原来的控制台程序一致
func Orders() []Order {
	return []Order{OrderLevel, OrderPre, OrderIn, OrderPost}
}

func ParseOrder(s string) (Order, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, o := range Orders() {
		if string(o) == name {
			return o, nil
		}
	}
	if o, ok := orderAliases[name]; ok {
		return o, nil
	}
	return "", errorutil.Newf(errorutil.CodeInvalidUsage,
		"无效的遍历顺序: %q (可选 preorder/inorder/postorder/levelorder)", s)
}

// 为了让 VarP 接收自定义类型，实现 pflag.Value 接口(String Set Type)
func (o *Order) String() string { return string(*o) }

func (o *Order) Set(val string) error {
	parsed, err := ParseOrder(val)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func (o *Order) Type() string {
	return "order"
}

// Title 打印时用的标题
func (o Order) Title() string {
	switch o {
	case OrderPre:
		return "Preorder"
	case OrderIn:
		return "Inorder"
	case OrderPost:
		return "Postorder"
	case OrderLevel:
		return "Level order"
	}
	return string(o)
}

// Walk 按指定顺序访问节点，visit 返回 false 时提前结束
func Walk(root *Node, order Order, visit func(*Node) bool) error {
	switch order {
	case OrderPre:
		walkPre(root, visit)
	case OrderIn:
		walkIn(root, visit)
	case OrderPost:
		walkPost(root, visit)
	case OrderLevel:
		walkLevel(root, visit)
	default:
		parsed, err := ParseOrder(string(order))
		if err != nil {
			return err
		}
		return Walk(root, parsed, visit)
	}
	return nil
}

// Traverse 按指定顺序收集所有 key
func Traverse(root *Node, order Order) ([]int, error) {
	keys := []int{}
	err := Walk(root, order, func(n *Node) bool {
		keys = append(keys, n.Key)
		return true
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (t *Tree) Traverse(order Order) ([]int, error) {
	return Traverse(t.root, order)
}

func PreOrder(root *Node) []int   { return collect(root, walkPre) }
func InOrder(root *Node) []int    { return collect(root, walkIn) }
func PostOrder(root *Node) []int  { return collect(root, walkPost) }
func LevelOrder(root *Node) []int { return collect(root, walkLevel) }

func collect(root *Node, walk func(*Node, func(*Node) bool)) []int {
	keys := []int{}
	walk(root, func(n *Node) bool {
		keys = append(keys, n.Key)
		return true
	})
	return keys
}

// 先序：弹出即访问，先压右再压左，保证左边先出栈
func walkPre(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		v, _ := stack.Pop()
		cur := v.(*Node)
		if !visit(cur) {
			return
		}
		if cur.Right != nil {
			stack.Push(cur.Right)
		}
		if cur.Left != nil {
			stack.Push(cur.Left)
		}
	}
}

// 中序：一路压左链，弹出访问后转向右子树
func walkIn(root *Node, visit func(*Node) bool) {
	stack := arraystack.New()
	cur := root
	for cur != nil || !stack.Empty() {
		for cur != nil {
			stack.Push(cur)
			cur = cur.Left
		}
		v, _ := stack.Pop()
		cur = v.(*Node)
		if !visit(cur) {
			return
		}
		cur = cur.Right
	}
}

// 后序（双栈）：第一个栈按 根-右-左 的顺序倒进第二个栈，第二个栈弹出就是 左-右-根
func walkPost(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	first := arraystack.New()
	second := arraystack.New()
	first.Push(root)
	for !first.Empty() {
		v, _ := first.Pop()
		cur := v.(*Node)
		second.Push(cur)
		if cur.Left != nil {
			first.Push(cur.Left)
		}
		if cur.Right != nil {
			first.Push(cur.Right)
		}
	}
	for !second.Empty() {
		v, _ := second.Pop()
		if !visit(v.(*Node)) {
			return
		}
	}
}

// 层序：FIFO 队列，先左后右入队
func walkLevel(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	queue := arrayqueue.New()
	queue.Enqueue(root)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		cur := v.(*Node)
		if !visit(cur) {
			return
		}
		if cur.Left != nil {
			queue.Enqueue(cur.Left)
		}
		if cur.Right != nil {
			queue.Enqueue(cur.Right)
		}
	}
}
