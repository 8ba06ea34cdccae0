package testutils

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/btree"
)

// KeySet 用 google/btree 做参照的有序集合，测试里和 AVL 树的结果对比
type KeySet struct {
	tr *btree.BTreeG[int]
}

func NewKeySet(keys ...int) *KeySet {
	s := &KeySet{tr: btree.NewOrderedG[int](8)}
	for _, k := range keys {
		s.Insert(k)
	}
	return s
}

// Insert 返回是否是新 key
func (s *KeySet) Insert(key int) bool {
	_, existed := s.tr.ReplaceOrInsert(key)
	return !existed
}

// Delete 返回 key 原来是否存在
func (s *KeySet) Delete(key int) bool {
	_, existed := s.tr.Delete(key)
	return existed
}

func (s *KeySet) Has(key int) bool { return s.tr.Has(key) }
func (s *KeySet) Len() int         { return s.tr.Len() }

// Keys 升序返回所有 key，空集合返回空切片
func (s *KeySet) Keys() []int {
	keys := make([]int, 0, s.tr.Len())
	s.tr.Ascend(func(k int) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// RandomKeys 固定种子生成 n 个 [-span, span] 范围内的随机数（可能重复）
func RandomKeys(seed int64, n, span int) []int {
	r := rand.New(rand.NewSource(seed))
	keys := make([]int, n)
	for i := range keys {
		keys[i] = r.Intn(2*span+1) - span
	}
	return keys
}

// WriteTempFile 在测试临时目录写一个文件，返回路径
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写临时文件 %s 失败: %v", path, err)
	}
	return path
}
