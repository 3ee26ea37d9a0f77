//go:build !no_bubbletea

package download

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/common/i18n"
	"github.com/krau/download-manager/common/i18n/i18nk"
	"github.com/krau/download-manager/core/engine"
)

const (
	teaEnabled  = true
	barInterval = 100 * time.Millisecond
)

var (
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// progressMsg carries the latest engine snapshot
type progressMsg engine.Progress

// progressErrMsg is sent when the item failed
type progressErrMsg struct{ err error }

// progressDoneMsg is sent when the item is complete
type progressDoneMsg struct{}

// downloadModel is the bubbletea model of one item
type downloadModel struct {
	progress progress.Model
	id       string
	snapshot engine.Progress
	streams  int
	err      error
	done     bool
	width    int
}

func newDownloadModel(id string) downloadModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
	)
	return downloadModel{
		progress: p,
		id:       id,
	}
}

func (m downloadModel) Init() tea.Cmd {
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-10, 80)
		return m, nil

	case progressMsg:
		m.snapshot = engine.Progress(msg)
		if m.snapshot.Finished() {
			m.streams++
			return m, m.progress.SetPercent(1.0)
		}
		if m.snapshot.Total <= 0 {
			return m, nil
		}
		return m, m.progress.SetPercent(float64(m.snapshot.Downloaded) / float64(m.snapshot.Total))

	case progressErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case progressDoneMsg:
		m.done = true
		m.progress.SetPercent(1.0)
		return m, tea.Quit

	case progress.FrameMsg:
		if m.done {
			return m, nil
		}
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m downloadModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("\n  ❌ %s: %s\n\n", m.id, m.err.Error())
	}

	var sb strings.Builder
	sb.WriteString("\n")

	name := m.id
	if m.snapshot.Title != "" {
		name = m.snapshot.Title
	}
	sb.WriteString(fmt.Sprintf("  📁 %s\n", name))
	sb.WriteString(fmt.Sprintf("  📊 %s / %s",
		humanize.Bytes(uint64(max(m.snapshot.Downloaded, 0))),
		humanize.Bytes(uint64(max(m.snapshot.Total, 0))),
	))
	if m.snapshot.ETA > 0 && !m.snapshot.Finished() {
		sb.WriteString(fmt.Sprintf("  ⏱ %s", m.snapshot.ETA.Round(time.Second)))
	}
	sb.WriteString("\n\n")

	sb.WriteString("  ")
	sb.WriteString(m.progress.View())
	sb.WriteString("\n\n")

	switch {
	case m.done:
		sb.WriteString("  √ " + i18n.T(i18nk.DownloadUiDone) + "\n\n")
	case m.snapshot.Finished():
		sb.WriteString("  " + i18n.T(i18nk.DownloadStreamDone) + "\n\n")
	default:
		sb.WriteString(helpStyle.Render("  " + i18n.T(i18nk.DownloadUiCancel)))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// downloadProgress manages the progress UI of one item
type downloadProgress struct {
	program *tea.Program
	cancel  context.CancelFunc
}

func newDownloadProgress(ctx context.Context, c *console.Console, id string) *downloadProgress {
	ctx, cancel := context.WithCancel(ctx)
	p := tea.NewProgram(
		newDownloadModel(id),
		tea.WithoutSignalHandler(),
		tea.WithContext(ctx),
		tea.WithOutput(c.Out()),
		tea.WithInput(nil), // Ctrl+C cancels the root context instead
	)
	return &downloadProgress{
		program: p,
		cancel:  cancel,
	}
}

func (dp *downloadProgress) start() {
	go func() {
		dp.program.Run()
	}()
}

func (dp *downloadProgress) finish(err error) {
	if err != nil {
		dp.program.Send(progressErrMsg{err: err})
	} else {
		dp.program.Send(progressDoneMsg{})
	}
	dp.program.Wait()
	dp.cancel()
}

// teaTracker shows a progress bar for the item being downloaded.
type teaTracker struct {
	console *console.Console
	limiter *rate.Limiter
	ui      *downloadProgress
}

func newTeaTracker(c *console.Console) engine.ProgressTracker {
	return &teaTracker{
		console: c,
		limiter: rate.NewLimiter(rate.Every(barInterval), 1),
	}
}

func (t *teaTracker) OnStart(ctx context.Context, req engine.Request) {
	announce(t.console, req)
	t.ui = newDownloadProgress(ctx, t.console, req.DisplayID)
	t.ui.start()
}

func (t *teaTracker) OnProgress(_ context.Context, _ engine.Request, p engine.Progress) {
	if t.ui == nil {
		return
	}
	if !p.Finished() && !t.limiter.Allow() {
		return
	}
	t.ui.program.Send(progressMsg(p))
}

func (t *teaTracker) OnDone(_ context.Context, _ engine.Request, err error) {
	if t.ui == nil {
		return
	}
	t.ui.finish(err)
	t.ui = nil
}
