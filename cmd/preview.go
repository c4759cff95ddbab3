package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/graang/graang/internal/model"
	"github.com/graang/graang/internal/translator"
)

// previewCmd shows an interactive browser for a conversion outcome
var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Interactive preview of a dashboard conversion",
	Long: `Convert a Datadog dashboard in memory and browse the outcome in an
interactive terminal UI. Each widget is listed with the panel it maps
to, and the selected panel's queries and grid position are shown in
detail.

Keyboard shortcuts:
  q         - Quit
  ↑/k       - Previous widget
  ↓/j       - Next widget

Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := translator.NewTranslator(appConfig.TranslatorOptions())
		board, report, err := t.TranslateFromFile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to convert dashboard: %w", err)
		}

		p := tea.NewProgram(newPreviewModel(args[0], board, report), tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running preview: %w", err)
		}

		return nil
	},
}

// Model for the preview
type previewModel struct {
	sourceFile string
	board      *model.Board
	report     *translator.Report
	cursor     int
	quitting   bool
}

func newPreviewModel(sourceFile string, board *model.Board, report *translator.Report) previewModel {
	return previewModel{
		sourceFile: sourceFile,
		board:      board,
		report:     report,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.report.Widgets)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

func (m previewModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var s strings.Builder

	// Header
	s.WriteString(previewHeaderStyle.Render("CONVERSION PREVIEW"))
	s.WriteString("\n\n")

	s.WriteString(previewBoldStyle.Render(m.board.Title))
	s.WriteString(previewDimStyle.Render(fmt.Sprintf("  (%s, uid %s)", m.sourceFile, m.board.UID)))
	s.WriteString("\n")
	s.WriteString(previewDimStyle.Render(fmt.Sprintf("%d widget(s): %d converted, %d placeholder(s)",
		m.report.Total, m.report.Converted, m.report.Placeholders)))
	s.WriteString("\n\n")

	// Widget list
	s.WriteString(previewSectionStyle.Render("WIDGETS"))
	s.WriteString("\n")
	s.WriteString(previewBoxStyle.Render(m.renderWidgetList()))
	s.WriteString("\n\n")

	// Selected panel detail
	s.WriteString(previewSectionStyle.Render("SELECTED PANEL"))
	s.WriteString("\n")
	s.WriteString(previewBoxStyle.Render(m.renderDetail()))
	s.WriteString("\n\n")

	// Footer
	s.WriteString(previewHelpStyle.Render("[q]uit  [↑/k] previous  [↓/j] next"))

	return s.String()
}

func (m previewModel) renderWidgetList() string {
	if len(m.report.Widgets) == 0 {
		return previewDimStyle.Render("No widgets")
	}

	var s strings.Builder

	for i, outcome := range m.report.Widgets {
		if i > 0 {
			s.WriteString("\n")
		}

		if outcome.Outcome == translator.OutcomeConverted {
			s.WriteString(previewOKStyle.Render("✓"))
		} else {
			s.WriteString(previewWarnStyle.Render("✗"))
		}
		s.WriteString(" ")

		title := outcome.Title
		if title == "" {
			title = "[untitled]"
		}
		line := fmt.Sprintf("%s  %s → %s", title, outcome.SourceType, outcome.PanelType)
		if i == m.cursor {
			s.WriteString(previewSelectedStyle.Render(line))
		} else {
			s.WriteString(line)
		}
	}

	return s.String()
}

func (m previewModel) renderDetail() string {
	if m.cursor >= len(m.report.Widgets) || m.cursor >= len(m.board.Panels) {
		return previewDimStyle.Render("Nothing selected")
	}

	outcome := m.report.Widgets[m.cursor]
	panel := m.board.Panels[m.cursor]

	var s strings.Builder

	s.WriteString(previewBoldStyle.Render(fmt.Sprintf("Panel %d: %s", panel.ID, panel.Type)))
	s.WriteString("\n")
	s.WriteString(previewDimStyle.Render(fmt.Sprintf("Grid: x=%d y=%d w=%d h=%d",
		panel.GridPos.X, panel.GridPos.Y, panel.GridPos.W, panel.GridPos.H)))
	s.WriteString("\n")

	if outcome.Reason != "" {
		s.WriteString(previewWarnStyle.Render(fmt.Sprintf("Reason: %s", outcome.Reason)))
		s.WriteString("\n")
	}

	if len(panel.Targets) == 0 {
		s.WriteString(previewDimStyle.Render("No queries"))
	} else {
		for i, target := range panel.Targets {
			if i > 0 {
				s.WriteString("\n")
			}
			s.WriteString(fmt.Sprintf("%s: %s", target.RefID, target.Expr))
		}
	}

	return s.String()
}

// Styles

var (
	previewPrimaryColor = lipgloss.Color("#7D56F4")
	previewSuccessColor = lipgloss.Color("#04B575")
	previewWarnColor    = lipgloss.Color("#FFA500")
	previewDimColor     = lipgloss.Color("#666666")

	previewHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(previewPrimaryColor).
				PaddingLeft(2)

	previewSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(previewPrimaryColor)

	previewBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(previewPrimaryColor).
			Padding(1, 2).
			Width(80)

	previewBoldStyle = lipgloss.NewStyle().
				Bold(true)

	previewDimStyle = lipgloss.NewStyle().
			Foreground(previewDimColor)

	previewOKStyle = lipgloss.NewStyle().
			Foreground(previewSuccessColor).
			Bold(true)

	previewWarnStyle = lipgloss.NewStyle().
				Foreground(previewWarnColor).
				Bold(true)

	previewSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(previewSuccessColor)

	previewHelpStyle = lipgloss.NewStyle().
				Foreground(previewDimColor).
				Italic(true)
)

func init() {
	rootCmd.AddCommand(previewCmd)
}
