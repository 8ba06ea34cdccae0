// Package bracket 解析括号表示法的二叉树
//
// 语法（严格版本，空孩子必须显式写成 ()）:
//
//	node  := blank "(" blank [ int blank node blank node blank ] ")" blank
//	int   := ["-"] digit+
//	blank := (' ' | '\t')*
//
// 例如 (1(2()())(3()())) 是根 1、左孩子 2、右孩子 3 的树；
// (1(2)(3)) 省略了空孩子，不合法。
package bracket

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"avl_tool/pkg/bintree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/logutil"
	"avl_tool/pkg/toolutil"
)

// ErrEmptyTree 输入只有 () 或者什么都没有，得不到一棵树
var ErrEmptyTree = errors.New("empty tree")

// SyntaxError 带位置（字节偏移，从 0 开始）的语法错误
type SyntaxError struct {
	Input  string
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("位置 %d: %s", e.Pos, e.Reason)
}

func invalid(input string, err error) error {
	return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData,
		fmt.Sprintf("括号表示法格式错误: %q", input), err)
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Validate 单遍扫描检查整串输入是否符合语法：
// 括号深度不能为负、结尾必须归零，有值的节点必须正好两个孩子
func Validate(s string) error {
	type frame struct {
		open     int // '(' 的位置
		hasValue bool
		children int
	}
	var stack []frame
	roots := 0

	fail := func(pos int, format string, args ...any) error {
		return invalid(s, &SyntaxError{Input: s, Pos: pos, Reason: fmt.Sprintf(format, args...)})
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isBlank(c):
		case c == '(':
			if len(stack) == 0 {
				if roots > 0 {
					return fail(i, "根节点之后还有多余的输入")
				}
				roots++
			} else {
				top := &stack[len(stack)-1]
				if !top.hasValue {
					return fail(i, "'(' 后面应该是整数或者 ')'")
				}
				top.children++
				if top.children > 2 {
					return fail(i, "节点最多只能有两个孩子")
				}
			}
			stack = append(stack, frame{open: i})
		case c == ')':
			if len(stack) == 0 {
				return fail(i, "多余的 ')'")
			}
			top := stack[len(stack)-1]
			if top.hasValue && top.children != 2 {
				return fail(i, "节点需要左右两个孩子（空孩子写成 ()），实际只有 %d 个", top.children)
			}
			stack = stack[:len(stack)-1]
		case c == '-' || isDigit(c):
			start := i
			if c == '-' {
				i++
			}
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			if i == start+1 && c == '-' {
				return fail(start, "'-' 后面缺少数字")
			}
			if len(stack) == 0 {
				return fail(start, "整数必须写在括号里")
			}
			top := &stack[len(stack)-1]
			if top.hasValue || top.children > 0 {
				return fail(start, "一个节点只能有一个值，并且值必须紧跟在 '(' 后面")
			}
			if _, err := strconv.Atoi(s[start:i]); err != nil {
				return fail(start, "整数 %s 超出范围", s[start:i])
			}
			top.hasValue = true
			i-- // for 循环会再加一
		default:
			return fail(i, "非法字符 %q", c)
		}
	}

	if len(stack) > 0 {
		return fail(stack[len(stack)-1].open, "'(' 没有闭合")
	}
	if roots == 0 {
		return invalid(s, ErrEmptyTree)
	}
	return nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) skipBlank() {
	for p.pos < len(p.s) && isBlank(p.s[p.pos]) {
		p.pos++
	}
}

func (p *parser) eat(c byte) bool {
	if p.pos < len(p.s) && p.s[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Input: p.s, Pos: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) integer() (int, error) {
	start := p.pos
	p.eat('-')
	digits := p.pos
	for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == digits {
		return 0, p.errorf("缺少数字")
	}
	return strconv.Atoi(p.s[start:p.pos])
}

// node 递归解析一个节点，() 返回 nil
func (p *parser) node() (*bintree.Node, error) {
	p.skipBlank()
	if !p.eat('(') {
		return nil, p.errorf("应该是 '('")
	}
	p.skipBlank()
	if p.eat(')') {
		return nil, nil
	}

	value, err := p.integer()
	if err != nil {
		return nil, err
	}
	left, err := p.node()
	if err != nil {
		return nil, err
	}
	right, err := p.node()
	if err != nil {
		return nil, err
	}

	p.skipBlank()
	if !p.eat(')') {
		return nil, p.errorf("应该是 ')'")
	}
	return &bintree.Node{Value: value, Left: left, Right: right}, nil
}

// Parse 先校验再解析，失败时不会返回半棵树
func Parse(s string) (*bintree.Node, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	p := &parser{s: s}
	root, err := p.node()
	if err != nil {
		return nil, invalid(s, err)
	}
	p.skipBlank()
	if p.pos != len(p.s) {
		return nil, invalid(s, p.errorf("根节点之后还有多余的输入"))
	}
	if root == nil {
		return nil, invalid(s, ErrEmptyTree)
	}
	return root, nil
}

// Load 读取第一行并解析，同时返回读到的原始行用于回显
func Load(r io.Reader) (*bintree.Node, string, error) {
	line, err := toolutil.ReadFirstLine(r)
	if errors.Is(err, io.EOF) {
		return nil, "", invalid("", ErrEmptyTree)
	}
	if err != nil {
		return nil, "", errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "读取输入失败", err)
	}

	logutil.Debug("读到的括号表示法: %s", line)
	root, err := Parse(line)
	if err != nil {
		return nil, line, err
	}
	return root, line, nil
}

// LoadFile 打开文件读取第一行；文件不存在和读不了分别给不同的错误码
func LoadFile(path string) (*bintree.Node, string, error) {
	f, err := os.Open(path)
	if err != nil {
		code := errorutil.CodeIOError
		if errors.Is(err, os.ErrNotExist) {
			code = errorutil.CodeMissingInput
		}
		return nil, "", errorutil.NewExitErrorWithMessage(code, fmt.Sprintf("无法打开文件 %s", path), err)
	}
	defer f.Close()

	return Load(f)
}
