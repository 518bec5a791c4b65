package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	listTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	listNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(4).Align(lipgloss.Right)
	listNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(12).PaddingLeft(1)
	listErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Width(12).PaddingLeft(1)
)

// formatVoiceList lays out all 32 voice names in two columns, 1-16 on the
// left and 17-32 on the right.
func formatVoiceList(title string, d *BulkDump) string {
	const rows = VoicesPerBank / 2

	cell := func(n int) string {
		p, _ := d.Voice(n)
		name, err := p.Name()
		if err != nil {
			return listNumberStyle.Render(fmt.Sprint(n)) + listErrorStyle.Render("<invalid>")
		}
		return listNumberStyle.Render(fmt.Sprint(n)) + listNameStyle.Render(name)
	}

	var b strings.Builder
	b.WriteString(listTitleStyle.Render(title))
	b.WriteString("\n")
	for r := 1; r <= rows; r++ {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cell(r), cell(r+rows)))
		b.WriteString("\n")
	}
	return b.String()
}
