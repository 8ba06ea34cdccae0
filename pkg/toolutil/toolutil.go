package toolutil

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ReadFirstLine 只读第一行，空输入返回 io.EOF
func ReadFirstLine(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// JoinInts 把整数切片用分隔符拼起来，打印遍历结果用
func JoinInts(values []int, sep string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
