package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leengari/minidb/internal/engine"
)

const helpText = `Commands:
  CREATE name (col [INDEXED], ...);
  INSERT [INTO] name ("v1", "v2", ...);
  SELECT FROM name [WHERE col op "value"|col] [ORDER_BY col [ASC|DESC], ...];
  SHOW INDEXES name;
  EXPLAIN SELECT ...;
Meta commands:
  .tables   list tables
  .help     show this help
  exit, \q  quit
`

// REPL reads commands line by line, executes them and prints the outcome.
// A failing command prints an error and the loop continues.
type REPL struct {
	eng *engine.Engine
	out io.Writer
}

func New(eng *engine.Engine, out io.Writer) *REPL {
	return &REPL{eng: eng, out: out}
}

// Start runs the interactive loop with line editing and history until exit or EOF
func (r *REPL) Start(ctx context.Context, prompt, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          r.out,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(r.out, "Welcome to minidb")
	fmt.Fprintln(r.out, "Type '.help' for help, 'exit' or '\\q' to quit.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := r.Handle(ctx, line); quit {
			return nil
		}
	}
}

// Run executes every line read from in without prompting (scripts, pipes, tests).
// Lines have no length limit.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line != "" {
			if quit := r.Handle(ctx, line); quit {
				return nil
			}
		}
		if err != nil {
			return nil
		}
	}
}

// Handle executes one line and reports whether the loop should stop
func (r *REPL) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	switch line {
	case "exit", "\\q":
		return true
	case ".help":
		fmt.Fprint(r.out, helpText)
		return false
	case ".tables":
		for _, name := range r.eng.Catalog().TableNames() {
			fmt.Fprintf(r.out, "  - %s\n", name)
		}
		return false
	}

	result, err := r.eng.ExecuteCommand(ctx, line)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return false
	}

	PrintResult(r.out, result)
	return false
}

// PrintResult writes a human-readable rendering of result to w
func PrintResult(w io.Writer, res *engine.Result) {
	fmt.Fprint(w, res.Text())
}
