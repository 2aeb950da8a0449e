package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shikifyj/corosync-config-tool/internal/ui"
)

var (
	progressBarFull  = lipgloss.NewStyle().Foreground(ui.ColorGreen)
	progressBarEmpty = lipgloss.NewStyle().Foreground(ui.ColorDim)
	footerStyle      = lipgloss.NewStyle().Foreground(ui.ColorDim).MarginTop(1)

	spinnerFrames = []string{"[.  ]", "[.. ]", "[...]", "[ ..]", "[  .]", "[   ]"}
)

func renderView(m Model) string {
	var b strings.Builder
	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderNodes(&b, m)
	renderFooter(&b, m)
	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(ui.TitleStyle.Render("corosync: " + m.ClusterName))

	status := " "
	switch {
	case m.Err != nil:
		status += ui.FailedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += ui.OKStyle.Render("Applied")
	default:
		status += ui.ActiveStyle.Render(currentSpinner(m.SpinnerFrame)) + ui.WarningStyle.Render(" applying")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*m.progress()), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))
	fmt.Fprintf(b, "  %s %d%%\n", bar, int(m.progress()*100))
}

func renderNodes(b *strings.Builder, m Model) {
	b.WriteString(ui.SectionStyle.MarginTop(1).Render("  Nodes"))
	b.WriteString("\n")
	for _, n := range m.Nodes {
		var icon string
		switch {
		case n.Err != nil:
			icon = ui.FailedStyle.Render(ui.CrossMark)
		case n.Done:
			icon = ui.OKStyle.Render(ui.CheckMark)
		case n.Active:
			icon = ui.ActiveStyle.Render(currentSpinner(m.SpinnerFrame))
		default:
			icon = ui.DimStyle.Render(ui.Pending)
		}

		line := fmt.Sprintf("  %s %s", icon, n.Name)
		if n.Total > 0 {
			line += ui.DimStyle.Render(fmt.Sprintf(" %d/%d", n.StepsDone, n.Total))
		}
		if n.Active && n.Label != "" {
			line += " " + ui.DimStyle.Render(n.Label)
		}
		if n.Err != nil {
			line += " " + ui.FailedStyle.Render(n.Err.Error())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := ""
	if !m.StartTime.IsZero() {
		elapsed = "elapsed " + formatDuration(time.Since(m.StartTime)) + "  "
	}
	b.WriteString(footerStyle.Render("  " + elapsed + "q to quit"))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
