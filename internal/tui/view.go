package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docspell/internal/model"
	"docspell/internal/report"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimmedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cleanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // Orange
	targetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	borderColor   = lipgloss.Color("63")
	activeColor   = lipgloss.Color("205")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Checking comments... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}

	netWidth := max(m.WindowSize.Width-6, 20)
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth
	interiorHeight := max(m.WindowSize.Height-8, 2)

	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render(fmt.Sprintf("Findings (%d)", m.Result.Rejections)))
	leftView.WriteString("\n\n")

	// Keep the cursor roughly centered once the list overflows.
	visible := max(interiorHeight-2, 1)
	start, end := 0, len(m.Items)
	if len(m.Items) > visible {
		start = max(m.SelectedIdx-visible/2, 0)
		start = min(start, len(m.Items)-visible)
		end = start + visible
	}

	if len(m.Items) == 0 {
		leftView.WriteString(dimmedStyle.Render("no unrecognized words"))
	}
	for i := start; i < end; i++ {
		line := m.itemLabel(m.Items[i])
		if len(line) > leftWidth-2 {
			line = line[:max(leftWidth-5, 0)] + "..."
		}
		style := normalStyle
		if i == m.SelectedIdx {
			style = selectedStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.DetailsViewport.View())

	footer := dimmedStyle.Render("↑/↓ move • / filter • c clean files • pgup/pgdn scroll • q quit")
	if m.InputMode {
		footer = "Filter: " + m.InputBuffer.View()
	} else if m.Filter != "" {
		footer = fmt.Sprintf("filter %q • esc clear • ", m.Filter) + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("docspell "+model.Version),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer,
	)
}

func (m AppModel) itemLabel(it item) string {
	fr := m.Result.Files[it.File]
	if it.Line < 0 {
		icon := model.IconRejected
		if fr.Clean() {
			icon = model.IconClean
		}
		return fmt.Sprintf("%s %s (%d)", icon, fr.Path, fr.Rejections)
	}
	lr := fr.Lines[it.Line]
	return fmt.Sprintf("  %s line %d: %s", model.IconLine, lr.SourceLine, report.FormatWords(lr.Words))
}

// renderDetails renders the right panel for the selected row.
func (m AppModel) renderDetails() string {
	fr, lr := m.selected()
	if fr == nil {
		return ""
	}
	if lr == nil {
		if fr.Clean() {
			return cleanStyle.Render(report.FormatFile(*fr))
		}
		return rejectStyle.Render(report.FormatFile(*fr))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s:%d", fr.Path, lr.SourceLine)))
	sb.WriteString("\n\n")

	ctx := model.GetLineContext(fr.Path, lr.SourceLine)
	if ctx.ErrorMsg != "" {
		sb.WriteString(dimmedStyle.Render(ctx.ErrorMsg))
	} else {
		ctxLine := func(ok bool, n int, text string) {
			if ok {
				sb.WriteString(dimmedStyle.Render(fmt.Sprintf("  %4d  %s", n, text)) + "\n")
			}
		}
		ctxLine(ctx.HasBefore2, lr.SourceLine-2, ctx.Before2)
		ctxLine(ctx.HasBefore1, lr.SourceLine-1, ctx.Before1)
		sb.WriteString(targetStyle.Render(fmt.Sprintf("%s %4d  %s", model.IconTarget, lr.SourceLine, ctx.Target)) + "\n")
		ctxLine(ctx.HasAfter1, lr.SourceLine+1, ctx.After1)
		ctxLine(ctx.HasAfter2, lr.SourceLine+2, ctx.After2)
	}

	sb.WriteString("\n")
	sb.WriteString(rejectStyle.Render("unrecognized: " + report.FormatWords(lr.Words)))
	return sb.String()
}
