package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/briarfell/jotter/manifest"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// BuildStatusMsg is a [tea.Msg] containing a [manifest.Status] snapshot.
type BuildStatusMsg struct {
	t      time.Time
	status manifest.Status
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler
	builder   statusProvider

	fullWidthWithBorders  int
	splitWidthWithBorders int

	status manifest.Status

	indexProgress progress.Model
	logsViewport  viewport.Model
	logs          []string
	maxLogs       int

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, builder statusProvider, cancel context.CancelFunc, maxLogs int) TeaModel {
	indexProgress := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(80),
	)

	logsViewport := viewport.New(80, 20)

	return TeaModel{
		uiHandler:     uiHandler,
		builder:       builder,
		indexProgress: indexProgress,
		status:        manifest.Status{},
		logsViewport:  logsViewport,
		logs:          make([]string, 0, maxLogs),
		maxLogs:       maxLogs,
		cancel:        cancel,
		ready:         false,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		updateBuildStatus(m.builder),
	)
}

// updateBuildStatus produces a [tea.Cmd] for later scheduling in a
// [tea.Program]. When executed, a [BuildStatusMsg] with the builder's
// current [manifest.Status] is returned.
func updateBuildStatus(b statusProvider) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { //nolint:mnd
		buildStatusMsg := BuildStatusMsg{
			t:      t,
			status: b.Status(),
		}

		return buildStatusMsg
	})
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.splitWidthWithBorders = (m.width / 2) - 2

		// Progress bars should match the content width.
		m.indexProgress.Width = m.splitWidthWithBorders

		// We want upper panels to take about 40% of the height.
		upperHeight := m.height * 2 / 5
		lowerHeight := m.height - upperHeight

		// Viewport height: lower section minus borders and title.
		viewportHeight := lowerHeight - 3

		// Set viewport width to full width minus borders.
		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = viewportHeight

		// Update viewport content with current logs.
		if len(m.logs) > 0 {
			logs := lipgloss.NewStyle().
				Width(m.logsViewport.Width).
				Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

			m.logsViewport.SetContent(logs)
			m.logsViewport.GotoBottom()
		}

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case BuildStatusMsg:
		m.status = msg.status

		cmds = append(cmds,
			m.indexProgress.SetPercent(m.status.Indexing.ProgressPct/100),
		)

		// Queue the next update.
		cmds = append(cmds, updateBuildStatus(m.builder))

	case logMsg:
		if len(m.logs) >= m.maxLogs {
			m.logs = m.logs[1:]
		}

		m.logs = append(m.logs, string(msg))

		logs := lipgloss.NewStyle().
			Width(m.logsViewport.Width).
			Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

		m.logsViewport.SetContent(logs)
		m.logsViewport.GotoBottom()

	case progress.FrameMsg:
		updatedIndex, cmd := m.indexProgress.Update(msg)
		if progressModel, ok := updatedIndex.(progress.Model); ok {
			m.indexProgress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	// Handle viewport updates.
	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the UI..."
	}

	var s strings.Builder

	scanView := m.formatScanView()
	indexView := m.formatIndexView()

	progressSection := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(m.splitWidthWithBorders).Render(scanView),
		borderStyle.Width(m.splitWidthWithBorders).Render(indexView),
	)

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Process Information"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("q: quit ui • ctrl+c: quit program")

	s.WriteString(lipgloss.JoinVertical(
		lipgloss.Left,
		progressSection,
		logsSection,
		helpSection,
	))

	return s.String()
}

// formatScanView is a helper function for rendering the scan panel.
func (m TeaModel) formatScanView() string {
	var state string

	switch {
	case m.status.ScanComplete:
		state = "Finished"
	case m.status.ScanActive:
		state = "Scanning..."
	default:
		state = "Waiting..."
	}

	details := fmt.Sprintf(
		"State: %s\n"+
			"Discovered: %d files\n",
		state,
		m.status.Discovered,
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.splitWidthWithBorders).Render("Scan"),
		"", // Empty line for spacing.
		infoStyle.Width(m.splitWidthWithBorders).Render(details),
	)

	return content
}

// formatIndexView is a helper function for rendering the index panel.
func (m TeaModel) formatIndexView() string {
	progress := m.status.Indexing

	var timeLeft time.Duration
	var timeLeftMin float64

	if !progress.ETA.IsZero() {
		timeLeft = time.Until(progress.ETA)
		timeLeftMin = timeLeft.Minutes()
	}

	var details string
	if !progress.HasFinished {
		details = fmt.Sprintf(
			"Progress: %.2f%% (%d/%d)\n"+
				"Items: InProgress=%d, Success=%d, Skipped=%d\n"+
				"Data: %s\n"+
				"Time: Started=%v, ETA=%v (%.1f%s left)\n"+
				"Speed: %d %s\n",
			progress.ProgressPct,
			progress.ProcessedItems,
			progress.TotalItems,
			progress.InProgressItems,
			progress.SuccessItems,
			progress.SkippedItems,
			humanize.Bytes(m.status.BytesIndexed),
			progress.StartTime.Format("15:04:05"),
			progress.ETA.Format("15:04:05"),
			timeLeftMin, "min",
			int(progress.TransferSpeed), progress.TransferSpeedUnit,
		)
	} else {
		details = fmt.Sprintf(
			"Progress: %.2f%% (%d/%d)\n"+
				"Items: InProgress=%d, Success=%d, Skipped=%d\n"+
				"Data: %s\n"+
				"Time: Started=%v, Finished=%v\n",
			progress.ProgressPct,
			progress.ProcessedItems,
			progress.TotalItems,
			progress.InProgressItems,
			progress.SuccessItems,
			progress.SkippedItems,
			humanize.Bytes(m.status.BytesIndexed),
			progress.StartTime.Format("15:04:05"),
			progress.FinishTime.Format("15:04:05"),
		)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.splitWidthWithBorders).Render("Index"),
		"", // Empty line for spacing.
		m.indexProgress.View(),
		"", // Empty line for spacing.
		infoStyle.Width(m.splitWidthWithBorders).Render(details),
	)

	return content
}
