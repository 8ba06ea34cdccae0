package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/seed"
	"avl_tool/pkg/toolutil"
	"avl_tool/pkg/treedot"
	"avl_tool/pkg/treejson"

	"github.com/spf13/cobra"
)

func usageErr(format string, args ...any) error {
	return errorutil.Newf(errorutil.CodeInvalidUsage, format, args...)
}

func parseKeys(args []string) ([]int, error) {
	keys := make([]int, 0, len(args))
	for _, s := range args {
		k, err := strconv.Atoi(s)
		if err != nil {
			return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage,
				fmt.Sprintf("%q 不是整数", s), err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// loadPlain --text 优先，其次 --file
func (a *app) loadPlain() error {
	switch {
	case a.opts.text != "":
		return a.sess.LoadString(a.opts.text)
	case a.opts.file != "":
		return a.sess.LoadFile(a.opts.file)
	}
	return usageErr("需要用 --file 或 --text 给出普通二叉树")
}

// keysFromJSON 读 json --traversals 的输出，取 --seed-order 对应的那一种遍历
func (a *app) keysFromJSON(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errorutil.CodeIOError
		if errors.Is(err, os.ErrNotExist) {
			code = errorutil.CodeMissingInput
		}
		return nil, errorutil.NewExitErrorWithMessage(code, fmt.Sprintf("无法读取文件 %s", path), err)
	}
	keys, err := treejson.Keys(string(data), a.sess.Config().SeedOrder)
	if err != nil {
		return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, path, err)
	}
	return keys, nil
}

// seedAVL 优先级: --keys, --keys-json, 最后读普通二叉树再转换
func (a *app) seedAVL() (seed.Result, error) {
	if len(a.opts.keys) > 0 {
		return a.sess.SeedKeys(a.opts.keys), nil
	}
	if a.opts.keysJSON != "" {
		keys, err := a.keysFromJSON(a.opts.keysJSON)
		if err != nil {
			return seed.Result{}, err
		}
		return a.sess.SeedKeys(keys), nil
	}
	if err := a.loadPlain(); err != nil {
		return seed.Result{}, err
	}
	return a.sess.Seed()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) printPlain() error {
	out, err := a.sess.ShowPlain()
	if err != nil {
		return err
	}
	a.printf("普通二叉树:\n%s", out)
	return nil
}

func (a *app) printSeed(res seed.Result) {
	a.printf("插入顺序: %s\n", toolutil.JoinInts(res.Sequence, " "))
	if len(res.Duplicates) > 0 {
		a.printf("重复的值已忽略: %s\n", toolutil.JoinInts(res.Duplicates, " "))
	}
}

func (a *app) printAVL() error {
	out, err := a.sess.ShowAVL()
	if err != nil {
		return err
	}
	a.printf("AVL 树:\n%s", out)
	return nil
}

// check 校验平衡、有序和缓存高度，失败时返回 CodeAssertionFailed
func (a *app) check() error {
	if err := a.sess.Validate(); err != nil {
		if errorutil.HasCode(err, errorutil.CodeMissingInput) {
			return err
		}
		a.printf("AVL 树不正确: %v\n", err)
		return errorutil.NewExitErrorWithMessage(errorutil.CodeAssertionFailed, "AVL 树校验失败", err)
	}
	st, err := a.sess.Stats()
	if err != nil {
		return err
	}
	a.printf("AVL 树正确 (%s)\n", st)
	return nil
}

func (a *app) printTraversals(order avltree.Order) error {
	if order != "" {
		keys, err := a.sess.Traverse(order)
		if err != nil {
			return err
		}
		a.printf("%s: %s\n", order.Title(), toolutil.JoinInts(keys, " "))
		return nil
	}
	all, err := a.sess.Traversals()
	if err != nil {
		return err
	}
	for _, t := range all {
		a.printf("%s\n", t)
	}
	return nil
}

func (a *app) insert(key int) error {
	ch, err := a.sess.Insert(key)
	if err != nil {
		return err
	}
	if !ch.Applied {
		a.printf("元素 %d 已经存在\n", key)
		return nil
	}
	a.printf("已插入 %d\n", key)
	a.printChange(ch.Diff, ch.Balanced)
	return nil
}

func (a *app) delete(key int) error {
	ch, err := a.sess.Delete(key)
	if err != nil {
		return err
	}
	if !ch.Applied {
		a.printf("元素 %d 不在树里\n", key)
		return nil
	}
	a.printf("已删除 %d\n", key)
	a.printChange(ch.Diff, ch.Balanced)
	return nil
}

func (a *app) printChange(diff string, balanced bool) {
	if diff != "" {
		a.printf("%s\n", diff)
	}
	if !balanced {
		a.printf("警告: 操作之后树不平衡\n")
	}
}

func (a *app) search(key int) error {
	found, err := a.sess.Search(key)
	if err != nil {
		return err
	}
	if found {
		a.printf("%d: 找到\n", key)
	} else {
		a.printf("%d: 没找到\n", key)
	}
	return nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "显示普通二叉树和它的先序序列",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadPlain(); err != nil {
				return err
			}
			return a.printPlain()
		},
	}
}

func (a *app) avlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avl",
		Short: "把普通二叉树转换成 AVL 树并检查",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.seedAVL()
			if err != nil {
				return err
			}
			a.printSeed(res)
			if err := a.printAVL(); err != nil {
				return err
			}
			return a.check()
		},
	}
}

func (a *app) traverseCmd() *cobra.Command {
	var order avltree.Order
	cmd := &cobra.Command{
		Use:   "traverse",
		Short: "AVL 树的遍历，不指定 --order 时四种都输出",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.seedAVL(); err != nil {
				return err
			}
			return a.printTraversals(order)
		},
	}
	cmd.Flags().VarP(&order, "order", "o", "preorder/inorder/postorder/levelorder")
	return cmd
}

// keyCmd insert/delete/search 的公共部分：建树，逐个处理，最后按需打印树
func (a *app) keyCmd(use, short string, each func(int) error, printTree bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " KEY...",
		Short: short,
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeys(args)
			if err != nil {
				return err
			}
			if _, err := a.seedAVL(); err != nil {
				return err
			}
			for _, k := range keys {
				if err := each(k); err != nil {
					return err
				}
			}
			if printTree {
				return a.printAVL()
			}
			return nil
		},
	}
}

func (a *app) insertCmd() *cobra.Command {
	return a.keyCmd("insert", "向 AVL 树插入元素", a.insert, true)
}

func (a *app) deleteCmd() *cobra.Command {
	return a.keyCmd("delete", "从 AVL 树删除元素", a.delete, true)
}

func (a *app) searchCmd() *cobra.Command {
	return a.keyCmd("search", "在 AVL 树里查找元素", a.search, false)
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "检查 AVL 树的平衡、有序性和高度",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.seedAVL(); err != nil {
				return err
			}
			return a.check()
		},
	}
}

func (a *app) dotCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "输出 Graphviz DOT",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				dot string
				err error
			)
			if plain {
				if err = a.loadPlain(); err != nil {
					return err
				}
				dot, err = treedot.Plain(a.sess.Plain())
			} else {
				if _, err = a.seedAVL(); err != nil {
					return err
				}
				dot, err = treedot.AVL(a.sess.AVL().Root())
			}
			if err != nil {
				return err
			}
			if _, err := treedot.CheckTree(dot); err != nil {
				return err
			}
			a.printf("%s", dot)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "输出普通二叉树而不是 AVL 树")
	return cmd
}

func (a *app) jsonCmd() *cobra.Command {
	var (
		plain      bool
		traversals bool
	)
	format := treejson.FormatMul
	cmd := &cobra.Command{
		Use:   "json",
		Short: "输出 JSON",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.renderJSON(plain, traversals, format)
			if err != nil {
				return err
			}
			a.printf("%s", out)
			if len(out) > 0 && out[len(out)-1] != '\n' {
				a.printf("\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "输出普通二叉树而不是 AVL 树")
	cmd.Flags().BoolVar(&traversals, "traversals", false, "输出四种遍历的结果")
	cmd.Flags().VarP(&format, "jsonformat", "F", "输出的 JSON 的格式(mul|one)，代表多行或者一行")
	return cmd
}

func (a *app) renderJSON(plain, traversals bool, format treejson.Format) (string, error) {
	if plain && traversals {
		return "", usageErr("--plain 和 --traversals 不能同时使用")
	}
	if plain {
		if err := a.loadPlain(); err != nil {
			return "", err
		}
		return treejson.Plain(a.sess.Plain(), format)
	}

	if _, err := a.seedAVL(); err != nil {
		return "", err
	}
	if !traversals {
		return treejson.AVL(a.sess.AVL().Root(), format)
	}

	all, err := a.sess.Traversals()
	if err != nil {
		return "", err
	}
	res := make(map[avltree.Order][]int, len(all))
	for _, t := range all {
		res[t.Order] = t.Keys
	}
	out, err := treejson.Traversals(res, format)
	if err != nil {
		return "", err
	}

	// 和 dot 一样，输出前读回来核对一遍
	for _, t := range all {
		back, err := treejson.Keys(out, t.Order)
		if err != nil {
			return "", errorutil.NewExitError(errorutil.CodeInternalErr, err)
		}
		if !slices.Equal(back, t.Keys) {
			return "", errorutil.Newf(errorutil.CodeInternalErr, "%s 读回的结果不一致: %v != %v", t.Order, back, t.Keys)
		}
	}
	return out, nil
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "打印合并命令行参数之后生效的配置",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			a.printf("%s", out)
			return nil
		},
	}
}
