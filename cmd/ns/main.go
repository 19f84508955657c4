// Command ns is the NovaScript CLI: it runs scripts, dumps tokens and
// syntax trees, type-checks without executing, and hosts the REPL.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	novascript "github.com/JM-Mushraf/NovaScript"
)

const (
	appName    = "ns"
	configFile = "ns.yaml"
	promptMain = "==> "
	promptCont = "... "
)

var (
	errColor    = color.New(color.FgRed)
	noteColor   = color.New(color.FgCyan)
	bannerColor = color.New(color.FgGreen, color.Bold)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:]))
	case "ast":
		os.Exit(cmdAST(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(novascript.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`NovaScript %s

Usage:
  %s run <file.ns>       Run a script.
  %s tokens <file.ns>    Print the token stream.
  %s ast <file.ns>       Print the checked syntax tree.
  %s check <file.ns>     Parse and type-check without running.
  %s repl                Start the REPL.
  %s version             Print the version.

Limits are read from %s in the working directory when present.
`, novascript.Version, appName, appName, appName, appName, appName, appName, configFile)
}

// loadConfig reads ns.yaml next to the invocation; a missing file means
// defaults.
func loadConfig() (*novascript.Config, error) {
	return novascript.LoadConfig(configFile)
}

func readSource(args []string, cmd string) (string, string, int) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s %s <file.ns>\n", appName, cmd)
		return "", "", 2
	}
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return "", "", 1
	}
	return string(src), file, 0
}

func reportError(err error, src string) {
	errColor.Fprintln(os.Stderr, novascript.WrapErrorWithSource(err, src).Error())
}

func cmdRun(args []string) int {
	src, _, code := readSource(args, "run")
	if code != 0 {
		return code
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}
	if err := novascript.RunWith(src, os.Stdout, cfg); err != nil {
		reportError(err, src)
		return 1
	}
	return 0
}

func cmdTokens(args []string) int {
	src, _, code := readSource(args, "tokens")
	if code != 0 {
		return code
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}
	tokens := novascript.NewLexerWith(src, cfg).Scan()
	fmt.Print(novascript.FormatTokens(tokens))
	return 0
}

func cmdAST(args []string) int {
	src, _, code := readSource(args, "ast")
	if code != 0 {
		return code
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}
	prog, table, perr := novascript.ParseWith(src, cfg)
	if perr != nil {
		reportError(perr, src)
		return 1
	}
	// Analysis annotates the tree with inferred types; the dump shows them.
	if serr := novascript.Analyze(prog, table); serr != nil {
		reportError(serr, src)
		return 1
	}
	fmt.Print(novascript.FormatProgram(prog))
	return 0
}

func cmdCheck(args []string) int {
	src, file, code := readSource(args, "check")
	if code != 0 {
		return code
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}
	prog, table, perr := novascript.ParseWith(src, cfg)
	if perr != nil {
		reportError(perr, src)
		return 1
	}
	if serr := novascript.Analyze(prog, table); serr != nil {
		reportError(serr, src)
		return 1
	}
	noteColor.Printf("%s: ok\n", file)
	return 0
}

func cmdRepl(_ []string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}
	bannerColor.Printf("NovaScript %s REPL\n", novascript.Version)
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, cfg.HistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := novascript.NewSession(os.Stdout, cfg)

	for {
		code, ok := readInput(ln, cfg)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.EqualFold(trimmed, ":quit") {
				return 0
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		if err := session.Eval(code); err != nil {
			errColor.Fprintln(os.Stderr, novascript.WrapErrorWithSource(err, code).Error())
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readInput collects one complete input, prompting for continuation lines
// while the text still opens an unclosed block.
func readInput(ln *liner.State, cfg *novascript.Config) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if novascript.Incomplete(src, cfg) {
			continue
		}
		return src, true
	}
}
