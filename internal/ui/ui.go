// Package ui implements a command-line user interface using [tea].
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/briarfell/jotter/manifest"
	tea "github.com/charmbracelet/bubbletea"
)

type statusProvider interface {
	Status() manifest.Status
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	builder statusProvider
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler].
func NewHandler(ctx context.Context, cancel context.CancelFunc, builder statusProvider, maxLogs int) *Handler {
	handler := &Handler{
		builder: builder,
	}

	model := NewTeaModel(handler, builder, cancel, maxLogs)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]).
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
