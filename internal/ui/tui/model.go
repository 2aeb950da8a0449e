package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// NodeProgress is the display state of one node.
type NodeProgress struct {
	Name      string
	Label     string
	StepsDone int
	Total     int
	Active    bool
	Done      bool
	Err       error
}

// Model is the Bubble Tea model for the apply dashboard.
type Model struct {
	ClusterName string
	Nodes       []NodeProgress

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewApplyModel creates a model with every node pending.
func NewApplyModel(clusterName string, nodes []string) Model {
	m := Model{
		ClusterName: clusterName,
		StartTime:   time.Now(),
		Nodes:       make([]NodeProgress, 0, len(nodes)),
	}
	for _, n := range nodes {
		m.Nodes = append(m.Nodes, NodeProgress{Name: n})
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case NodeStepMsg:
		m.updateNode(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateNode(msg NodeStepMsg) {
	idx := -1
	for i, n := range m.Nodes {
		if n.Name == msg.Node {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// nodes are processed in order, so earlier ones are finished
	for i := 0; i < idx; i++ {
		if m.Nodes[i].Err == nil {
			m.Nodes[i].Done = true
			m.Nodes[i].Active = false
		}
	}

	n := &m.Nodes[idx]
	n.Total = msg.Total
	if msg.Label != "" {
		n.Label = msg.Label
	}
	n.StepsDone = msg.Step
	n.Active = true
	if msg.Done {
		n.StepsDone = msg.Step + 1
	}
	if msg.Total > 0 && n.StepsDone >= msg.Total {
		n.Done = true
		n.Active = false
	}
	if msg.Err != nil {
		n.Err = msg.Err
		n.Active = false
	}
}

// progress is the fraction of all steps completed.
func (m Model) progress() float64 {
	if m.Done {
		return 1.0
	}
	if len(m.Nodes) == 0 {
		return 0
	}
	var sum float64
	for _, n := range m.Nodes {
		switch {
		case n.Done:
			sum++
		case n.Total > 0:
			sum += float64(n.StepsDone) / float64(n.Total)
		}
	}
	return sum / float64(len(m.Nodes))
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
