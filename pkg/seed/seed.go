package seed

import (
	"avl_tool/pkg/avltree"
	"avl_tool/pkg/bintree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/logutil"
)

// Result 转换结果
type Result struct {
	Tree       *avltree.Tree
	Sequence   []int // 从普通二叉树里取出的顺序，也就是插入顺序
	Duplicates []int // 被当作重复丢掉的值，先出现的那个保留
}

// Orders 普通二叉树支持的取值顺序
func Orders() []avltree.Order {
	return []avltree.Order{avltree.OrderPre, avltree.OrderLevel}
}

// Drain 按顺序把普通二叉树展开成序列，只支持先序和层序
func Drain(root *bintree.Node, order avltree.Order) ([]int, error) {
	switch order {
	case avltree.OrderPre:
		return bintree.PreOrder(root), nil
	case avltree.OrderLevel:
		return bintree.LevelOrder(root), nil
	}
	return nil, errorutil.Newf(errorutil.CodeInvalidUsage,
		"普通二叉树只能按 preorder 或 levelorder 取值，不支持 %q", order)
}

// Seed 把普通二叉树的值按指定顺序逐个插入一棵新的 AVL 树
// 不同顺序得到的 key 集合相同，但树的形状可能不同
func Seed(root *bintree.Node, order avltree.Order) (Result, error) {
	seq, err := Drain(root, order)
	if err != nil {
		return Result{}, err
	}
	logutil.Debug("按 %s 取出的序列: %v", order, seq)
	return FromKeys(seq), nil
}

// FromKeys 按给定顺序插入，重复值只记录不报错
func FromKeys(keys []int) Result {
	res := Result{
		Tree:       avltree.New(),
		Sequence:   keys,
		Duplicates: []int{},
	}
	for _, k := range keys {
		if !res.Tree.Insert(k) {
			res.Duplicates = append(res.Duplicates, k)
		}
	}
	if len(res.Duplicates) > 0 {
		logutil.Info("忽略重复的值: %v", res.Duplicates)
	}
	return res
}
