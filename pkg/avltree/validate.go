package avltree

import "fmt"

// ViolationKind 被破坏的不变量
type ViolationKind string

const (
	ViolationBalance ViolationKind = "balance" // |平衡因子| > 1
	ViolationOrder   ViolationKind = "order"   // 左小右大被破坏
	ViolationHeight  ViolationKind = "height"  // 缓存高度和实际不符
)

// Violation 校验发现的第一个问题
type Violation struct {
	Key     int
	Kind    ViolationKind
	Balance int
	Detail  string
}

func (v *Violation) Error() string {
	switch v.Kind {
	case ViolationBalance:
		return fmt.Sprintf("节点 %d 平衡被破坏: balance = %d", v.Key, v.Balance)
	case ViolationOrder:
		return fmt.Sprintf("节点 %d 有序性被破坏: %s", v.Key, v.Detail)
	default:
		return fmt.Sprintf("节点 %d 高度缓存错误: %s", v.Key, v.Detail)
	}
}

// Validate 先序检查每个节点的平衡、有序性和缓存高度，返回遇到的第一个问题
// 只用来做一致性检查，正常的增删查不会调用
func Validate(root *Node) error {
	_, err := validate(root, nil, nil)
	return err
}

// lo/hi 是祖先给出的开区间边界，nil 表示无界；返回子树真实高度
func validate(n *Node, lo, hi *int) (int, error) {
	if n == nil {
		return 0, nil
	}

	if bf := BalanceFactor(n); bf < -1 || bf > 1 {
		return 0, &Violation{Key: n.Key, Kind: ViolationBalance, Balance: bf}
	}
	if lo != nil && n.Key <= *lo {
		return 0, &Violation{Key: n.Key, Kind: ViolationOrder, Balance: BalanceFactor(n),
			Detail: fmt.Sprintf("%d <= %d", n.Key, *lo)}
	}
	if hi != nil && n.Key >= *hi {
		return 0, &Violation{Key: n.Key, Kind: ViolationOrder, Balance: BalanceFactor(n),
			Detail: fmt.Sprintf("%d >= %d", n.Key, *hi)}
	}

	key := n.Key
	lh, err := validate(n.Left, lo, &key)
	if err != nil {
		return 0, err
	}
	rh, err := validate(n.Right, &key, hi)
	if err != nil {
		return 0, err
	}

	actual := max(lh, rh) + 1
	if n.Height != actual {
		return 0, &Violation{Key: n.Key, Kind: ViolationHeight, Balance: BalanceFactor(n),
			Detail: fmt.Sprintf("cached %d, actual %d", n.Height, actual)}
	}
	return actual, nil
}

// IsBalanced 只检查平衡因子
func IsBalanced(n *Node) bool {
	balanced := true
	walkPre(n, func(cur *Node) bool {
		if bf := BalanceFactor(cur); bf < -1 || bf > 1 {
			balanced = false
			return false
		}
		return true
	})
	return balanced
}
