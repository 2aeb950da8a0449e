package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the dashboard is quit before apply ends.
var ErrInterrupted = errors.New("apply interrupted")

// ApplyFunc does the apply work, reporting progress on ch. It must stop
// starting new commands once ctx is cancelled.
type ApplyFunc func(ctx context.Context, ch chan<- NodeStepMsg) error

// RunApplyTUI wraps applyFn with the dashboard. applyFn runs in the
// background and the TUI exits when it returns. Quitting the TUI cancels
// applyFn's context and waits for it to return, so sessions it holds are
// closed before RunApplyTUI does.
func RunApplyTUI(ctx context.Context, applyFn ApplyFunc, clusterName string, nodes []string) error {
	return runApplyTUI(ctx, applyFn, clusterName, nodes)
}

func runApplyTUI(
	ctx context.Context,
	applyFn ApplyFunc,
	clusterName string,
	nodes []string,
	opts ...tea.ProgramOption,
) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewApplyModel(clusterName, nodes)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	// Send is a no-op once the program has exited, so forwarding keeps
	// draining ch until applyFn returns.
	done := make(chan error, 1)
	go func() {
		ch := make(chan NodeStepMsg, 10)
		errCh := make(chan error, 1)
		go func() {
			defer close(ch)
			errCh <- applyFn(runCtx, ch)
		}()

		for msg := range ch {
			p.Send(msg)
		}
		err := <-errCh
		if err != nil {
			p.Send(ErrMsg{Err: err})
		} else {
			p.Send(DoneMsg{})
		}
		done <- err
	}()

	finalModel, runErr := p.Run()
	cancel()
	applyErr := <-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	fm, _ := finalModel.(Model)
	if fm.Err != nil && !errors.Is(fm.Err, context.Canceled) {
		return fm.Err
	}
	if fm.Done {
		return nil
	}
	if applyErr != nil && !errors.Is(applyErr, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrInterrupted, applyErr)
	}
	return ErrInterrupted
}
