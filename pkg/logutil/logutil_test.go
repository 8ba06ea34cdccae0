package logutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"DEBUG", DEBUG, false},
		{"info", INFO, false},
		{" Warn ", WARN, false},
		{"ERROR", ERROR, false},
		{"verbose", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFlagValue(t *testing.T) {
	var l Level
	require.NoError(t, l.Set("warn"))
	assert.Equal(t, WARN, l)
	assert.Equal(t, "WARN", l.String())
	assert.Equal(t, "level", l.Type())
	assert.Error(t, l.Set("loud"))
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	old := GetLogLevel()
	defer SetLogLevel(old)

	SetLogLevel(WARN)
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	// 调用位置应该是本测试文件
	assert.True(t, strings.Contains(out, "logutil_test.go"), "caller missing in %q", out)
}

func TestErrorCarriesStack(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	old := GetLogLevel()
	defer SetLogLevel(old)
	SetLogLevel(DEBUG)

	Error("boom 100%% %s", "done")
	out := buf.String()
	assert.Contains(t, out, "[ERR] boom 100% done")
	assert.Contains(t, out, "调用堆栈")
	assert.Contains(t, out, "goroutine")
}
