package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Level 日志级别，值越小打印得越多
type Level int

const (
	DEBUG Level = iota // 0
	INFO               // 1
	WARN               // 2
	ERROR              // 3
)

// 定义日志级别映射字符串
var LOG_LEVELS = map[string]Level{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

var (
	logger       *log.Logger
	logFile      *os.File
	once         sync.Once
	mu           sync.Mutex
	currentLevel = INFO // 默认日志级别
)

func (l Level) String() string {
	for name, v := range LOG_LEVELS {
		if v == l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// 为了让 cobra 的 VarP 接收自定义类型，实现 pflag.Value 接口(String Set Type)
func (l *Level) Set(val string) error {
	level, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l *Level) Type() string {
	return "level"
}

// ParseLogLevel 不区分大小写解析日志级别
func ParseLogLevel(s string) (Level, error) {
	level, ok := LOG_LEVELS[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return INFO, fmt.Errorf("无效的日志级别: %q (可选 DEBUG/INFO/WARN/ERROR)", s)
	}
	return level, nil
}

// InitLogger 初始化日志，允许指定输出目标（stdout、stderr 或 文件）
func InitLogger(output string, level Level) error {
	var initErr error
	once.Do(func() {
		var w io.Writer
		switch output {
		case "", "stdout":
			w = os.Stdout
		case "stderr":
			w = os.Stderr
		default:
			// 以追加模式打开日志文件，不会覆盖已有内容
			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				initErr = fmt.Errorf("无法创建日志文件 %s: %w", output, err)
				w = os.Stderr
			} else {
				logFile = f
				w = f
			}
		}
		mu.Lock()
		logger = log.New(w, "", log.LstdFlags)
		currentLevel = level
		mu.Unlock()
	})
	return initErr
}

// SetOutput 替换输出目标，测试里用来抓日志
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", log.LstdFlags)
}

// 设置日志级别
func SetLogLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

func GetLogLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// logMessage 记录日志，**仅输出符合当前级别的日志**
func logMessage(level Level, msg string, args ...any) {
	if logger == nil {
		_ = InitLogger("stderr", WARN) // 没有初始化的时候只打印告警以上
	}
	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel {
		return
	}
	_, file, line, _ := runtime.Caller(2) // 获取真正调用的文件+行号
	logger.Printf("[%s:%d] %s", shortPath(file), line, fmt.Sprintf(msg, args...))
}

// 只保留包目录和文件名，绝对路径太长
func shortPath(file string) string {
	dir, name := filepath.Split(file)
	return filepath.Join(filepath.Base(dir), name)
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志，后面附带调用堆栈
func Error(msg string, args ...any) {
	size := 1024 // 初始缓冲区大小
	for {
		buf := make([]byte, size)
		n := runtime.Stack(buf, false)
		if n < size {
			// 堆栈作为参数传进去，避免里面的 % 被当成格式化字符
			formatted := strings.ReplaceAll(fmt.Sprintf(msg, args...), "%", "%%")
			logMessage(ERROR, "[ERR] "+formatted+"\n调用堆栈:\n%s", string(buf[:n]))
			return
		}
		// 扩展缓冲区大小，倍增策略
		size *= 2
	}
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		if err != nil {
			return err
		}
	}
	return nil
}
