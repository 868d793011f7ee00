// Package progress renders a determinate progress bar on stderr while
// renames are applied.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/renum/internal/ui/styles"
)

const stopTimeout = 500 * time.Millisecond

type progressUpdate struct {
	current int
	message string
}

// ProgressBar wraps a bubbletea progress bar for non-interactive use.
// Total is the number of planned renames.
type ProgressBar struct {
	program   *tea.Program
	updateCh  chan progressUpdate
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	total     int
	current   int
	message   string
}

type progressBarModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updateCh chan progressUpdate
}

func (m progressBarModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m progressBarModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updateCh
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m progressBarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m progressBarModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %d/%d %s", m.progress.ViewAs(m.percent()), m.current, m.total, m.message))
}

func (m progressBarModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.current) / float64(m.total)
}

// NewProgressBar creates a progress bar for total renames.
func NewProgressBar(total int, message string) *ProgressBar {
	return &ProgressBar{
		updateCh: make(chan progressUpdate, 10),
		done:     make(chan struct{}),
		total:    total,
		message:  message,
	}
}

// Start begins drawing the bar on stderr.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return
	}

	bar := progress.New(
		progress.WithWidth(30),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)

	model := progressBarModel{
		progress: bar,
		total:    p.total,
		current:  p.current,
		message:  p.message,
		updateCh: p.updateCh,
	}

	// stdout carries the rename report, keep the bar on stderr
	p.program = tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
	p.isRunning = true

	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()
}

// Advance marks one more rename as done and shows name as the message.
func (p *ProgressBar) Advance(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	p.message = name

	if !p.isRunning {
		return
	}

	// Drop the update if the channel is full; the next one catches up.
	select {
	case p.updateCh <- progressUpdate{current: p.current, message: p.message}:
	default:
	}
}

// Stop draws the final count, stops the bar and clears its line.
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = false
	final := progressUpdate{current: p.current, message: p.message}
	p.mu.Unlock()

	// Advance may have dropped the last update, the bar must end on it.
	select {
	case p.updateCh <- final:
	case <-p.done:
	case <-time.After(stopTimeout):
	}
	// The model quits once the channel is drained and closed.
	close(p.updateCh)

	select {
	case <-p.done:
	case <-time.After(stopTimeout):
		if p.program != nil {
			p.program.Quit()
		}
	}

	fmt.Fprint(os.Stderr, "\r\033[K")
}

// Total returns the number of planned renames.
func (p *ProgressBar) Total() int {
	return p.total
}

// Current returns the number of renames reported so far.
func (p *ProgressBar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
