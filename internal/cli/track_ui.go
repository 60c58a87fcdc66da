package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hoopnarrator/internal/hoopapi"
	"hoopnarrator/internal/model"
	"hoopnarrator/internal/tracker"
)

var (
	trackTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	trackMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	trackErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	trackOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

type uploadPctMsg int

type trackUpdateMsg struct {
	job model.Job
}

type trackDoneMsg struct {
	job model.Job
}

type trackModel struct {
	label string
	spin  spinner.Model
	bar   progress.Model

	job         model.Job
	uploadPct   int
	uploaded    bool
	done        bool
	interrupted bool
}

func newTrackModel(label string) trackModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = trackMutedStyle
	return trackModel{
		label: label,
		spin:  sp,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (m trackModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 50 {
			width = 50
		}
		if width > 0 {
			m.bar.Width = width
		}
	case uploadPctMsg:
		m.uploadPct = int(msg)
		if m.uploadPct >= 100 {
			m.uploaded = true
		}
	case trackUpdateMsg:
		m.job = msg.job
	case trackDoneMsg:
		m.job = msg.job
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m trackModel) View() string {
	var b strings.Builder
	b.WriteString(trackTitleStyle.Render("hoopnarrator") + " " + m.label + "\n\n")

	switch {
	case m.done && m.job.Phase == model.PhaseCompleted:
		b.WriteString(trackOKStyle.Render("completed") + "\n")
		b.WriteString("result: " + m.job.ResultURL + "\n")
	case m.done && m.job.Phase == model.PhaseFailed:
		detail := m.job.ErrorDetail
		if detail == "" {
			detail = "video processing failed"
		}
		b.WriteString(trackErrorStyle.Render("failed") + " " + detail + "\n")
	case m.job.Phase == model.PhaseSubmitting:
		if m.job.Source.Kind == model.SourceFile && !m.uploaded {
			b.WriteString("uploading " + m.bar.ViewAs(float64(m.uploadPct)/100) + "\n")
		} else {
			b.WriteString(m.spin.View() + "submitting...\n")
		}
	case m.job.Phase == model.PhasePolling:
		status := m.job.Status
		if status == "" {
			status = model.StatusProcessing
		}
		b.WriteString(m.spin.View() + status + " " + m.bar.ViewAs(float64(m.job.Progress)/100) + "\n")
		if m.job.Message != "" {
			b.WriteString(trackMutedStyle.Render(m.job.Message) + "\n")
		}
	default:
		b.WriteString(m.spin.View() + "starting...\n")
	}

	if !m.done {
		b.WriteString("\n" + trackMutedStyle.Render("q to stop watching (the job keeps running)") + "\n")
	}
	return b.String()
}

func runTrackedUI(client *hoopapi.Client, start func(tr *tracker.Tracker) error, label string) (model.Job, error) {
	p := tea.NewProgram(newTrackModel(label))

	tr := tracker.New(tracker.Options{
		API: client,
		Callbacks: tracker.Callbacks{
			OnUploadProgress: func(pct int) { p.Send(uploadPctMsg(pct)) },
			OnUpdate:         func(job model.Job) { p.Send(trackUpdateMsg{job: job}) },
			OnDone:           func(job model.Job) { p.Send(trackDoneMsg{job: job}) },
		},
	})
	if err := start(tr); err != nil {
		return model.Job{}, err
	}

	final, err := p.Run()
	// Teardown on every exit path; a no-op when the job already finished.
	tr.Cancel()
	if err != nil {
		return tr.Job(), err
	}

	fm, ok := final.(trackModel)
	if !ok {
		return tr.Job(), nil
	}
	if fm.interrupted {
		return fm.job, errInterrupted
	}
	return fm.job, nil
}
