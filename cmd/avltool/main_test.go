package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"avl_tool/internal/testutils"
	"avl_tool/pkg/avltree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/session"
	"avl_tool/pkg/treedot"
	"avl_tool/pkg/treejson"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "-l", "stderr"}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "-t", "(1(2(4()())())(3()(5()())))")
	require.NoError(t, err)
	assert.Contains(t, out, "普通二叉树:")
	assert.Contains(t, out, "DFS: 1 2 4 3 5")
}

func TestAVLFromFile(t *testing.T) {
	path := testutils.WriteTempFile(t, "tree.txt", "(10(20(30()())())(10()()))\n")
	out, err := run(t, "avl", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "插入顺序: 10 20 30 10")
	assert.Contains(t, out, "重复的值已忽略: 10")
	assert.Contains(t, out, "20(h=2)")
	assert.Contains(t, out, "AVL 树正确")
}

func TestInsertDeleteSearch(t *testing.T) {
	out, err := run(t, "insert", "-k", "20,10,30", "25", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "已插入 25")
	assert.Contains(t, out, "元素 25 已经存在")
	assert.Contains(t, out, "* Before")
	assert.Contains(t, out, "AVL 树:")

	out, err = run(t, "delete", "-k", "20,10,30", "--show-diff=false", "99", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "元素 99 不在树里")
	assert.Contains(t, out, "已删除 10")
	assert.NotContains(t, out, "* Before")

	out, err = run(t, "search", "-k", "20,10,30", "10", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "10: 找到")
	assert.Contains(t, out, "11: 没找到")
}

func TestTraverse(t *testing.T) {
	out, err := run(t, "traverse", "-k", "20,10,30", "--order", "in")
	require.NoError(t, err)
	assert.Equal(t, "Inorder: 10 20 30\n", out)

	out, err = run(t, "traverse", "-k", "20,10,30")
	require.NoError(t, err)
	assert.Equal(t, "Level order: 20 10 30\n"+
		"Preorder: 20 10 30\n"+
		"Inorder: 10 20 30\n"+
		"Postorder: 10 30 20\n", out)
}

func TestSeedOrderFlag(t *testing.T) {
	out, err := run(t, "avl", "-t", "(3(1()(2()()))(5(4()())()))", "--seed-order", "levelorder")
	require.NoError(t, err)
	assert.Contains(t, out, "插入顺序: 3 1 5 2 4")
}

func TestJSONTraversals(t *testing.T) {
	out, err := run(t, "json", "-k", "4,2,6,1,3,5,7", "--traversals", "-F", "one")
	require.NoError(t, err)

	keys, err := treejson.Keys(out, avltree.OrderPost)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 5, 7, 6, 4}, keys)
}

func TestDotPlain(t *testing.T) {
	out, err := run(t, "dot", "--plain", "-t", "(1(2()())())")
	require.NoError(t, err)

	info, err := treedot.CheckTree(out)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Nodes)
	assert.Equal(t, 1, info.Placeholders)
}

func TestConfigFileAndOverride(t *testing.T) {
	path := testutils.WriteTempFile(t, "avltool.yaml", "seed_order: levelorder\nprinter:\n  style: 0\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "-l", "stderr", "--direction", "1", "config"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "seed_order: levelorder")
	assert.Contains(t, out.String(), "style: 0")
	assert.Contains(t, out.String(), "direction: 1")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no input", []string{"show"}, errorutil.CodeInvalidUsage},
		{"bad bracket", []string{"show", "-t", "(1(2)(3))"}, errorutil.CodeInvalidData},
		{"empty tree", []string{"show", "-t", "()"}, errorutil.CodeInvalidData},
		{"missing file", []string{"avl", "-f", "/nonexistent/tree.txt"}, errorutil.CodeMissingInput},
		{"inorder seed", []string{"avl", "-t", "(1()())", "--seed-order", "inorder"}, errorutil.CodeInvalidUsage},
		{"bad order", []string{"traverse", "-k", "1", "--order", "zigzag"}, errorutil.CodeInvalidUsage},
		{"bad key", []string{"insert", "-k", "1", "x"}, errorutil.CodeInvalidUsage},
		{"no key", []string{"search", "-k", "1"}, errorutil.CodeInvalidUsage},
		{"bad style", []string{"show", "-t", "(1()())", "--style", "7"}, errorutil.CodeInvalidUsage},
		{"unknown command", []string{"rotate"}, errorutil.CodeInvalidUsage},
		{"unknown flag", []string{"show", "--bogus"}, errorutil.CodeInvalidUsage},
		{"extra arg", []string{"validate", "-k", "1", "2"}, errorutil.CodeInvalidUsage},
		{"bad error format", []string{"--error-format", "xml", "show"}, errorutil.CodeInvalidUsage},
		{"plain and traversals", []string{"json", "-k", "1", "--plain", "--traversals"}, errorutil.CodeInvalidUsage},
		{"missing keys json", []string{"avl", "--keys-json", "/nonexistent/keys.json"}, errorutil.CodeMissingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			t.Log(err)
			assert.Equal(t, tt.code, errorutil.ExitCodeFromError(err))
		})
	}
}

// scriptAsker 按顺序返回预先写好的输入，用完后返回 EOF
type scriptAsker struct {
	labels  []string
	choices []int
	strs    []string
	ints    []int
}

func (s *scriptAsker) Choose(label string, _ []string) (int, error) {
	s.labels = append(s.labels, label)
	if len(s.choices) == 0 {
		return 0, promptui.ErrEOF
	}
	idx := s.choices[0]
	s.choices = s.choices[1:]
	return idx, nil
}

func (s *scriptAsker) String(string) (string, error) {
	if len(s.strs) == 0 {
		return "", promptui.ErrEOF
	}
	v := s.strs[0]
	s.strs = s.strs[1:]
	return v, nil
}

func (s *scriptAsker) Int(string) (int, error) {
	if len(s.ints) == 0 {
		return 0, promptui.ErrEOF
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v, nil
}

func newTestApp(out *bytes.Buffer) *app {
	return &app{out: out, sess: session.New(session.DefaultConfig())}
}

func TestMenu(t *testing.T) {
	path := testutils.WriteTempFile(t, "tree.txt", "(5(3()())(8()()))\n")

	var out bytes.Buffer
	a := newTestApp(&out)
	ask := &scriptAsker{
		// 显示(还没加载) 加载 生成 插入 查找 删除 遍历 检查 退出
		choices: []int{1, 0, 2, 5, 7, 6, 4, 8, 9},
		strs:    []string{path},
		ints:    []int{6, 6, 100},
	}
	require.NoError(t, a.runMenu(ask))

	got := out.String()
	assert.Contains(t, got, session.ErrNoPlainTree.Message)
	assert.Contains(t, got, "读取到的字符串: (5(3()())(8()()))")
	assert.Contains(t, got, "插入顺序: 5 3 8")
	assert.Contains(t, got, "已插入 6")
	assert.Contains(t, got, "6: 找到")
	assert.Contains(t, got, "元素 100 不在树里")
	assert.Contains(t, got, "Level order: 5 3 8 6")
	assert.Contains(t, got, "AVL 树正确")
	assert.Contains(t, got, "退出")

	require.Len(t, ask.labels, 9)
	assert.Contains(t, ask.labels[0], "普通二叉树: 未加载, AVL 树: 未生成")
	assert.Contains(t, ask.labels[2], "普通二叉树: 已加载, AVL 树: 未生成")
	assert.Contains(t, ask.labels[8], "AVL 树: 4 个节点")
}

func TestMenuEOF(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(&out)

	// 要输入值的时候遇到 EOF 也直接结束
	require.NoError(t, a.runMenu(&scriptAsker{choices: []int{5}}))
	require.NoError(t, a.runMenu(&scriptAsker{}))
}

func TestRootWithoutCommandPrintsHelp(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "括号表示法")
}

func TestKeysJSON(t *testing.T) {
	out, err := run(t, "json", "-k", "20,10,30,25", "--traversals")
	require.NoError(t, err)
	path := testutils.WriteTempFile(t, "keys.json", out)

	out, err = run(t, "traverse", "--keys-json", path, "--order", "post")
	require.NoError(t, err)
	assert.Equal(t, "Postorder: 10 25 30 20\n", out)

	out, err = run(t, "traverse", "--keys-json", path, "--seed-order", "levelorder", "--order", "in")
	require.NoError(t, err)
	assert.Equal(t, "Inorder: 10 20 25 30\n", out)

	bad := testutils.WriteTempFile(t, "inorder.json", `{"inorder":[1,2]}`)
	_, err = run(t, "avl", "--keys-json", bad)
	require.Error(t, err)
	assert.Equal(t, errorutil.CodeInvalidData, errorutil.ExitCodeFromError(err))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, errorutil.CodeSuccess, report(&buf, errorFormatText, nil))
	assert.Empty(t, buf.String())

	err := errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "括号不匹配", errors.New("位置 3"))
	assert.Equal(t, errorutil.CodeInvalidData, report(&buf, errorFormatText, err))
	assert.Equal(t, "错误: 括号不匹配: 位置 3\n", buf.String())

	buf.Reset()
	assert.Equal(t, errorutil.CodeInvalidData, report(&buf, errorFormatJSON, err))
	js := buf.String()
	assert.Equal(t, int64(errorutil.CodeInvalidData), gjson.Get(js, "code").Int())
	assert.Equal(t, "括号不匹配", gjson.Get(js, "message").String())
	assert.Equal(t, "位置 3", gjson.Get(js, "error").String())

	buf.Reset()
	assert.Equal(t, errorutil.CodeInternalErr, report(&buf, errorFormatJSON, errors.New("boom")))
	assert.Equal(t, "boom", gjson.Get(buf.String(), "error").String())
	assert.Equal(t, errorutil.CodeMissingInput, report(&buf, errorFormatText, session.ErrNoAVLTree))
}
