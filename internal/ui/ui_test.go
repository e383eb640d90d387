package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/briarfell/jotter/manifest"
	"github.com/briarfell/jotter/schema"
	"github.com/briarfell/jotter/walk"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeStatusProvider struct{}

func (*fakeStatusProvider) Status() manifest.Status { return manifest.Status{} }

// TestTeaUI is an integration test for the command-line user interface.
func TestTeaUI(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var in bytes.Buffer

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	base := t.TempDir()
	for i := range 50 {
		content := fmt.Appendf(nil, "file body %d\n", i)
		if err := os.WriteFile(filepath.Join(base, fmt.Sprintf("file%02d.txt", i)), content, 0o644); err != nil {
			t.Fatalf("Expected nil, got %v", err)
		}
	}

	builder := manifest.NewBuilder(walk.NewHandler(&schema.OS{}), &schema.OS{}, &schema.Unix{}, false)

	handler := &Handler{builder: builder}
	model := NewTeaModel(handler, builder, cancel, 100)
	program := tea.NewProgram(model, tea.WithInput(&in), tea.WithOutput(&buf), tea.WithAltScreen(), tea.WithContext(ctx))

	handler.program = program
	handler.LogWriter = NewTeaLogWriter(handler.program)

	go func() {
		// Simulate some build work for the UI to render.
		for {
			time.Sleep(time.Millisecond)
			if handler.Ready.Load() {
				if _, err := builder.Build(ctx, base); err != nil {
					return
				}

				return
			}
			if handler.Failed.Load() {
				return
			}
		}
	}()

	go func() {
		// Simulate some fast-paced logs and key presses for the UI.
		for {
			time.Sleep(time.Millisecond)
			if handler.Ready.Load() {
				program.Send(tea.WindowSizeMsg{Width: 200, Height: 200})
				time.Sleep(time.Millisecond)

				program.Send(logMsg("log1"))
				time.Sleep(time.Millisecond)

				_, _ = handler.LogWriter.Write([]byte("log2"))
				time.Sleep(time.Millisecond)

				for range 150 {
					_, _ = handler.LogWriter.Write([]byte("fast logs"))
				}
				time.Sleep(time.Millisecond)

				program.Send(tea.WindowSizeMsg{Width: 200, Height: 250})

				time.Sleep(3 * time.Second)
				program.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

				return
			}
			if handler.Failed.Load() {
				return
			}
		}
	}()

	if err := handler.Launch(); err != nil {
		t.Fatalf("Expected nil, got %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("UI generated no output at all")
	}

	by := buf.Bytes()

	if !bytes.Contains(by, []byte("log1")) {
		t.Fatal("UI did not show the first log message sent (via program.Send)")
	}

	if !bytes.Contains(by, []byte("log2")) {
		t.Fatal("UI did not show the second log message sent (via LogWriter)")
	}

	if !bytes.Contains(by, []byte("Finished")) {
		t.Fatal("UI did not update the progress panels.")
	}
}

// TestTeaUI_Ctrl_C is an integration test for the command-line user
// interface. A Ctrl+C keypress is simulated, which should trigger upstream
// Context cancellation for signalling application teardown.
func TestTeaUI_Ctrl_C(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var in bytes.Buffer

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	builder := &fakeStatusProvider{}

	handler := &Handler{builder: builder}
	model := NewTeaModel(handler, builder, cancel, 100)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(&in), tea.WithOutput(&buf), tea.WithContext(ctx))

	handler.program = program
	handler.LogWriter = NewTeaLogWriter(handler.program)

	go func() {
		for {
			time.Sleep(time.Millisecond)
			if handler.Ready.Load() {
				program.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

				return
			}
			if handler.Failed.Load() {
				return
			}
		}
	}()

	err := handler.Launch()

	if err == nil {
		t.Fatalf("Expected %v, got nil", context.Canceled)
	}

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected %v, got %v", context.Canceled, err)
	}

	if buf.Len() == 0 {
		t.Fatal("UI generated no output at all")
	}
}
