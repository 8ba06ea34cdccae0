package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/logutil"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var menuItems = []string{
	"1. 从文件加载普通二叉树",
	"2. 显示普通二叉树",
	"3. 由普通二叉树生成 AVL 树",
	"4. 显示 AVL 树",
	"5. AVL 树的四种遍历",
	"6. 插入元素",
	"7. 删除元素",
	"8. 查找元素",
	"9. 检查 AVL 树",
	"0. 退出",
}

// asker 菜单里需要用户输入的地方，测试时可以换成假的
type asker interface {
	Choose(label string, items []string) (int, error)
	String(label string) (string, error)
	Int(label string) (int, error)
}

type promptAsker struct{}

func (promptAsker) Choose(label string, items []string) (int, error) {
	sel := &promptui.Select{
		Label:  label,
		Items:  items,
		Size:   len(items),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	idx, _, err := sel.Run()
	return idx, err
}

func (promptAsker) String(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if len(strings.TrimSpace(s)) == 0 {
				return errors.New("不能为空")
			}
			return nil
		},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	return prompt.Run()
}

func (promptAsker) Int(label string) (int, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("不是整数: %w", err)
			}
			return nil
		},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	txt, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(txt))
}

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "交互式菜单；给了 --file/--text 时先加载",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.text != "" || a.opts.file != "" {
				if err := a.loadPlain(); err != nil {
					a.printf("%v\n", err)
				}
			}
			return a.runMenu(promptAsker{})
		},
	}
}

// runMenu Ctrl-C / Ctrl-D 和选 0 一样直接退出；单个操作失败只打印，不退出
func (a *app) runMenu(ask asker) error {
	for {
		idx, err := ask.Choose(a.menuLabel(), menuItems)
		if err != nil {
			if isQuit(err) {
				return nil
			}
			return errorutil.NewExitError(errorutil.CodeIOError, err)
		}

		quit, err := a.menuAction(idx, ask)
		if err != nil {
			if isQuit(err) {
				return nil
			}
			logutil.Warn("菜单操作失败: %v", err)
			a.printf("%v\n", err)
		}
		if quit {
			a.printf("退出\n")
			return nil
		}
		a.printf("\n")
	}
}

// menuLabel 标题里带上当前两棵树的状态
func (a *app) menuLabel() string {
	plain, avl := "未加载", "未生成"
	if a.sess.HasPlain() {
		plain = "已加载"
	}
	if a.sess.HasAVL() {
		avl = fmt.Sprintf("%d 个节点", a.sess.AVL().Len())
	}
	return fmt.Sprintf("AVL 树工具 [普通二叉树: %s, AVL 树: %s]", plain, avl)
}

func isQuit(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}

func (a *app) menuAction(idx int, ask asker) (bool, error) {
	switch idx {
	case 0:
		path, err := ask.String("文件名")
		if err != nil {
			return false, err
		}
		if err := a.sess.LoadFile(strings.TrimSpace(path)); err != nil {
			return false, err
		}
		a.printf("读取到的字符串: %s\n普通二叉树创建成功\n", a.sess.Source())
	case 1:
		return false, a.printPlain()
	case 2:
		res, err := a.sess.Seed()
		if err != nil {
			return false, err
		}
		a.printSeed(res)
		a.printf("AVL 树创建成功\n")
		return false, a.check()
	case 3:
		return false, a.printAVL()
	case 4:
		return false, a.printTraversals("")
	case 5, 6, 7:
		key, err := ask.Int("值")
		if err != nil {
			return false, err
		}
		switch idx {
		case 5:
			return false, a.insert(key)
		case 6:
			return false, a.delete(key)
		default:
			return false, a.search(key)
		}
	case 8:
		return false, a.check()
	case 9:
		return true, nil
	default:
		return false, fmt.Errorf("无效的选择: %d", idx)
	}
	return false, nil
}
