package main

import (
	"fmt"
	"io"
	"os"

	"avl_tool/pkg/avltree"
	"avl_tool/pkg/errorutil"
	"avl_tool/pkg/initutil"
	"avl_tool/pkg/logutil"
	"avl_tool/pkg/session"
	"avl_tool/pkg/treeprinter"

	"github.com/spf13/cobra"
)

const TOOL_VERSION = "1.0.0+20261017"

type options struct {
	configPath string
	logFile    string
	logLevel   logutil.Level
	file       string
	text       string
	keys       []int
	keysJSON   string
	seedOrder  avltree.Order
	style      int
	direction  int
	showDiff   bool
	errFormat  errorFormat
}

type errorFormat string

const (
	errorFormatText errorFormat = "text"
	errorFormatJSON errorFormat = "json"
)

func (f *errorFormat) String() string { return string(*f) }

func (f *errorFormat) Set(val string) error {
	switch val {
	case string(errorFormatText), string(errorFormatJSON):
		*f = errorFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 error-format 值: %s (可选 text/json)", val)
	}
}

func (f *errorFormat) Type() string {
	return "errorformat"
}

type app struct {
	opts options
	cfg  initutil.Config
	sess *session.Session
	out  io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{
		opts: options{
			logFile:   "avltool.log",
			logLevel:  logutil.WARN,
			seedOrder: avltree.OrderPre,
			style:     int(treeprinter.Unicode),
			direction: int(treeprinter.RightRootLeft),
			showDiff:  true,
			errFormat: errorFormatText,
		},
		sess: session.New(session.DefaultConfig()),
		out:  os.Stdout,
	}

	var rootCmd = &cobra.Command{
		Use:     "avltool",
		Short:   fmt.Sprintf("avltool v%s 读取括号表示法的二叉树，转换成 AVL 树并做插入/删除/查找/遍历", TOOL_VERSION),
		Version: TOOL_VERSION,
		Long: "   ___  _   ____ \n" +
			"  / _ \\| | / / / \n" +
			" / __ || |/ / /__\n" +
			"/_/ |_||___/____/\n" +
			fmt.Sprintf("\navltool v%s 读取括号表示法的二叉树，转换成 AVL 树并做插入/删除/查找/遍历\n", TOOL_VERSION) +
			"括号表示法: 每个节点写成 (值 左孩子 右孩子)，空孩子写成 ()，例如 (1(2()())(3()()))\n",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", initutil.DefaultConfigFile, "YAML 配置文件，不存在时使用默认配置")
	pf.VarP(&a.opts.logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	pf.StringVarP(&a.opts.logFile, "log-file", "l", a.opts.logFile, "日志文件名(stdout/stderr 表示标准输出/标准错误)")
	pf.StringVarP(&a.opts.file, "file", "f", "", "括号表示法文件，只读第一行")
	pf.StringVarP(&a.opts.text, "text", "t", "", "直接给出括号表示法，优先于 --file")
	pf.IntSliceVarP(&a.opts.keys, "keys", "k", nil, "不读普通二叉树，直接按顺序插入这些值，例如 -k 3,1,2")
	pf.StringVar(&a.opts.keysJSON, "keys-json", "", "不读普通二叉树，从 json --traversals 的输出里按 --seed-order 取值插入")
	pf.Var(&a.opts.seedOrder, "seed-order", "普通二叉树转换成 AVL 树时的取值顺序(preorder/levelorder)")
	pf.IntVar(&a.opts.style, "style", a.opts.style, "打印风格(0 ascii, 1 unicode)")
	pf.IntVar(&a.opts.direction, "direction", a.opts.direction, "打印方向(0 右子树在上, 1 左子树在上)")
	pf.BoolVar(&a.opts.showDiff, "show-diff", a.opts.showDiff, "插入删除后并排显示前后的树")
	pf.Var(&a.opts.errFormat, "error-format", "错误输出到标准错误的格式(text/json)")

	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true
	// flag 解析错误(未知 flag、值不合法)统一算用法错误，子命令会沿父命令找到这个函数
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	})

	// PersistentPreRunE 回调，这个钩子会在用户的命令解析完成、flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a.out = cmd.OutOrStdout()
		return a.setup(cmd)
	}

	rootCmd.AddCommand(
		a.showCmd(),
		a.avlCmd(),
		a.traverseCmd(),
		a.insertCmd(),
		a.deleteCmd(),
		a.searchCmd(),
		a.validateCmd(),
		a.dotCmd(),
		a.jsonCmd(),
		a.configCmd(),
		a.menuCmd(),
	)
	return rootCmd
}

// setup 配置文件打底，命令行上显式给出的 flag 覆盖它
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := initutil.Load(a.opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel.String()
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.opts.logFile
	}
	if flags.Changed("seed-order") {
		cfg.SeedOrder = string(a.opts.seedOrder)
	}
	if flags.Changed("style") {
		cfg.Printer.Style = a.opts.style
	}
	if flags.Changed("direction") {
		cfg.Printer.Direction = a.opts.direction
	}
	if flags.Changed("show-diff") {
		cfg.ShowDiff = a.opts.showDiff
	}
	// 配置文件本身已经校验过，这里出错只可能是命令行参数
	if err := cfg.Validate(); err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage, "命令行参数无效", err)
	}

	if err := initutil.InitSystem(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}

	order, _ := cfg.Order()
	a.cfg = cfg
	a.sess.SetConfig(session.Config{
		SeedOrder: order,
		Style:     cfg.Style(),
		Direction: cfg.Direction(),
		ShowDiff:  cfg.ShowDiff,
	})
	return nil
}

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	format := rootCmd.PersistentFlags().Lookup("error-format").Value.String()
	code := report(os.Stderr, errorFormat(format), err)

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(code)
}

// usageArgs 参数个数不对也是用法错误
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
		}
		return nil
	}
}

// report 把错误写到 w 并返回退出码，json 格式方便脚本解析
func report(w io.Writer, format errorFormat, err error) int {
	if err == nil {
		return errorutil.CodeSuccess
	}
	logutil.Error("命令执行失败: %v", err)
	if format == errorFormatJSON {
		js, code := errorutil.FormatErrorAndCode(err)
		fmt.Fprintln(w, js)
		return code
	}
	fmt.Fprintf(w, "错误: %v\n", err)
	return errorutil.ExitCodeFromError(err)
}
