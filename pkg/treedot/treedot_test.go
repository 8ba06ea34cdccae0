package treedot

import (
	"strings"
	"testing"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/bracket"
	"avl_tool/pkg/errorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAVLRoundTrip(t *testing.T) {
	tree := avltree.New()
	for _, k := range []int{20, 10, 30, 25} {
		tree.Insert(k)
	}

	dot, err := AVL(tree.Root())
	require.NoError(t, err)
	t.Log(dot)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(dot), "digraph AVL"))
	assert.Contains(t, dot, `"20(h=3)"`)
	assert.Contains(t, dot, `"25(h=1)"`)

	info, err := CheckTree(dot)
	require.NoError(t, err)
	assert.Equal(t, "AVL", info.Name)
	assert.Equal(t, "n0", info.Root)
	assert.Equal(t, 4, info.Nodes)
	// 30 只有左孩子，右边补一个
	assert.Equal(t, 1, info.Placeholders)
}

func TestPlainRoundTrip(t *testing.T) {
	root, err := bracket.Parse("(1(2(4()())())(3()(5()())))")
	require.NoError(t, err)

	dot, err := Plain(root)
	require.NoError(t, err)

	info, err := CheckTree(dot)
	require.NoError(t, err)
	assert.Equal(t, "Plain", info.Name)
	assert.Equal(t, 5, info.Nodes)
	assert.Equal(t, 2, info.Placeholders)
}

func TestDuplicateValuesGetDistinctNodes(t *testing.T) {
	root, err := bracket.Parse("(4(4()())(4()()))")
	require.NoError(t, err)

	dot, err := Plain(root)
	require.NoError(t, err)

	info, err := CheckTree(dot)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Nodes)
	assert.Equal(t, 0, info.Placeholders)
}

func TestEmptyTree(t *testing.T) {
	dot, err := AVL(nil)
	require.NoError(t, err)

	info, err := CheckTree(dot)
	require.NoError(t, err)
	assert.Equal(t, 0, info.Nodes)
	assert.Empty(t, info.Root)
}

func TestCheckTreeRejects(t *testing.T) {
	tests := []struct {
		name string
		dot  string
		code int
	}{
		{"two parents", "digraph G { a -> b; c -> b; }", errorutil.CodeAssertionFailed},
		{"three children", "digraph G { a -> b; a -> c; a -> d; }", errorutil.CodeAssertionFailed},
		{"two roots", "digraph G { a; b; }", errorutil.CodeAssertionFailed},
		{"cycle", "digraph G { a -> b; b -> a; }", errorutil.CodeAssertionFailed},
		{"detached cycle", "digraph G { a -> b; c -> d; d -> c; }", errorutil.CodeAssertionFailed},
		{"not dot", "digraph G { a -> ", errorutil.CodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckTree(tt.dot)
			require.Error(t, err)
			t.Log(err)
			assert.Equal(t, tt.code, errorutil.ExitCodeFromError(err))
		})
	}
}
