package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestExitCodeFromError(t *testing.T) {
	base := errors.New("no such file")
	wrapped := fmt.Errorf("load: %w", NewExitErrorWithMessage(CodeMissingInput, "文件不存在", base))

	assert.Equal(t, CodeSuccess, ExitCodeFromError(nil))
	assert.Equal(t, CodeMissingInput, ExitCodeFromError(wrapped))
	assert.Equal(t, CodeInternalErr, ExitCodeFromError(base))
	assert.True(t, HasCode(wrapped, CodeMissingInput))
	assert.False(t, HasCode(wrapped, CodeIOError))
	assert.ErrorIs(t, wrapped, base)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "bad: inner", NewExitErrorWithMessage(CodeInvalidData, "bad", errors.New("inner")).Error())
	assert.Equal(t, "inner", NewExitError(CodeInvalidData, errors.New("inner")).Error())
	assert.Equal(t, "key 7", Newf(CodeInvalidUsage, "key %d", 7).Error())
	assert.Equal(t, "exit with code: 72", (&ExitErrorWithCode{Code: CodeIOError}).Error())
}

func TestFormatErrorAndCode(t *testing.T) {
	js, code := FormatErrorAndCode(NewExitErrorWithMessage(CodeInvalidData, "括号不匹配", errors.New("pos 3")))
	assert.Equal(t, CodeInvalidData, code)
	assert.Equal(t, int64(CodeInvalidData), gjson.Get(js, "code").Int())
	assert.Equal(t, "括号不匹配", gjson.Get(js, "message").String())
	assert.Equal(t, "pos 3", gjson.Get(js, "error").String())

	js, code = FormatErrorAndCode(errors.New("plain"))
	assert.Equal(t, CodeInternalErr, code)
	assert.Equal(t, "plain", gjson.Get(js, "error").String())
}
