// Package actions carries out an activated result item.
package actions

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/google/shlex"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
	"lookout/internal/eventbus"
	"lookout/internal/log"
)

// Method values found in the "method" attribute
const (
	MethodApp      = "app_launcher"
	MethodCommand  = "command"
	MethodWeb      = "web_launcher"
	MethodCopy     = "copy"
	MethodBulkText = "bulk_text"
)

// Spawner starts a program without waiting for it
type Spawner interface {
	Spawn(name string, args ...string) error
}

// Outcome tells the caller what to do after an activation
type Outcome struct {
	Method string
	// Output is printed (copy) or displayed (bulk_text)
	Output string
	// Quit is set when the launcher should close
	Quit bool
}

// Result pairs an activation with its outcome
type Result struct {
	ItemID  string
	Outcome Outcome
	Err     error
}

// Executor dispatches on the item's method attribute
type Executor struct {
	spawner Spawner
	opener  string
	logger  *slog.Logger
}

// NewExecutor creates an executor. A nil spawner starts real processes.
func NewExecutor(spawner Spawner) *Executor {
	if spawner == nil {
		spawner = ProcessSpawner{}
	}
	return &Executor{
		spawner: spawner,
		opener:  defaultOpener(),
		logger:  log.WithComponent("actions"),
	}
}

func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Execute runs the action described by attrs
func (e *Executor) Execute(ctx context.Context, attrs *domain.Attributes) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	method := attrs.Value("method")
	out := Outcome{Method: method}

	switch method {
	case MethodApp, MethodCommand:
		name, args, err := SplitExec(attrs.Value("exec"))
		if err != nil {
			return out, err
		}
		if err := e.spawn(name, args...); err != nil {
			return out, err
		}
		out.Quit = true

	case MethodWeb:
		url := attrs.Value("url")
		if url == "" {
			return out, lkerrors.Provider("Missing URL", "web item has no url", nil)
		}
		if err := e.spawn(e.opener, url); err != nil {
			return out, err
		}
		out.Quit = true

	case MethodCopy:
		out.Output = attrs.Value("result")
		out.Quit = true

	case MethodBulkText:
		out.Output = attrs.Value("next_content")

	default:
		return out, lkerrors.Provider("Unknown Method",
			fmt.Sprintf("no action for method %q", method), nil)
	}

	e.logger.Info("item activated", slog.String("method", method))
	return out, nil
}

func (e *Executor) spawn(name string, args ...string) error {
	if err := e.spawner.Spawn(name, args...); err != nil {
		return lkerrors.Environment("Spawn Failed",
			fmt.Sprintf("could not start %s", name), err)
	}
	return nil
}

// Subscribe executes every ItemActivatedEvent published on bus and sends
// the result to results. It returns the unsubscribe function.
func (e *Executor) Subscribe(bus eventbus.EventBus, results chan<- Result) func() {
	return bus.Subscribe(eventbus.EventItemActivated, func(ev eventbus.DomainEvent) {
		activated, ok := ev.(eventbus.ItemActivatedEvent)
		if !ok {
			return
		}
		out, err := e.Execute(context.Background(), activated.Attributes)
		if err != nil {
			e.logger.Warn("activation failed",
				slog.String("launcher", activated.Launcher), slog.Any("error", err))
		}
		results <- Result{ItemID: activated.ItemID, Outcome: out, Err: err}
	})
}

// desktop entry field codes that carry no meaning here
var fieldCodes = map[string]bool{
	"%f": true, "%F": true, "%u": true, "%U": true,
	"%d": true, "%D": true, "%n": true, "%N": true,
	"%i": true, "%c": true, "%k": true, "%v": true, "%m": true,
}

// SplitExec splits a command line with shell quoting rules and drops
// desktop entry field codes
func SplitExec(line string) (string, []string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return "", nil, lkerrors.Provider("Invalid Exec",
			fmt.Sprintf("cannot parse %q", line), err)
	}
	kept := words[:0]
	for _, w := range words {
		if fieldCodes[w] {
			continue
		}
		kept = append(kept, strings.ReplaceAll(w, "%%", "%"))
	}
	if len(kept) == 0 {
		return "", nil, lkerrors.Provider("Invalid Exec", "empty command", nil)
	}
	return kept[0], kept[1:], nil
}

// ProcessSpawner starts detached processes with os/exec
type ProcessSpawner struct{}

// Spawn starts name and reaps it in the background
func (ProcessSpawner) Spawn(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Recorder is a Spawner for --dry-run: it remembers commands instead of
// starting them
type Recorder struct {
	mu    sync.Mutex
	calls [][]string
}

// Spawn records the command line
func (r *Recorder) Spawn(name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil
}

// Calls returns the recorded command lines
func (r *Recorder) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}
