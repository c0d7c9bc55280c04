package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
)

// Runner runs an external command and returns its standard output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, killing them when ctx is cancelled
type ExecRunner struct{}

// Run implements Runner
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func bulkTextPlaceholder(l *Launcher, query string) (*domain.ResultItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, lkerrors.ErrNoMatch
	}
	attrs := domain.NewAttributes("method", string(KindBulkText))
	return l.newItem(float64(l.Priority), l.Name, "Loading…", l.BulkText.Icon, attrs), nil
}

func bulkTextResolve(ctx context.Context, l *Launcher, query string) (Resolution, error) {
	runner := l.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	args := make([]string, 0, len(l.BulkText.Args)+1)
	substituted := false
	for _, a := range l.BulkText.Args {
		if strings.Contains(a, "{keyword}") {
			a = strings.ReplaceAll(a, "{keyword}", query)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, query)
	}

	out, err := runner.Run(ctx, l.BulkText.Exec, args...)
	if err != nil {
		if ctx.Err() != nil {
			return Resolution{}, ctx.Err()
		}
		return Resolution{}, lkerrors.Provider("Command Failed",
			fmt.Sprintf("%s exited with an error", l.BulkText.Exec), err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return Resolution{}, lkerrors.ErrNoMatch
	}
	title, body, _ := strings.Cut(text, "\n")
	return Resolution{
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
		Attributes: domain.NewAttributes(
			"next_content", text,
		),
	}, nil
}
