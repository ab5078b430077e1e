package dashboard

import (
	"errors"
	"io"

	"github.com/bnema/secrecy-farm-cli/internal/application"
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func newModel(view func(styles) string) model {
	return model{
		view:   view,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the full dashboard: wallet, pools, positions and metrics.
func Render(dashboard application.Dashboard, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderDashboard(dashboard, opts, s)
	})
}

func RenderPools(pools []domain.Pool) (string, error) {
	return run(func(s styles) string {
		return renderPools(pools, s)
	})
}

func RenderPositions(dashboard application.Dashboard, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderPositions(dashboard, opts, s)
	})
}

func RenderMetrics(dashboard application.Dashboard) (string, error) {
	return run(func(s styles) string {
		return renderMetrics(dashboard, s)
	})
}

func RenderPoolSnapshot(snapshot domain.PoolSnapshot, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderPoolSnapshot(snapshot, opts, s)
	})
}

func run(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(view),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
