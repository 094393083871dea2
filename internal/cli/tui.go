package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	depsio "github.com/matzehuels/gitdeps/pkg/io"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LibraryListModel - Interactive dependency browser
// =============================================================================

// LibraryListModel is the bubbletea model for browsing a dependency listing.
// Enter toggles a detail pane with the declaring files of the current row.
type LibraryListModel struct {
	Libraries []depsio.Library
	Cursor    int
	Height    int
	Offset    int
	Expanded  bool
}

// NewLibraryListModel creates a new library list model.
func NewLibraryListModel(listing depsio.Listing) LibraryListModel {
	return LibraryListModel{
		Libraries: listing.Libraries,
		Height:    15,
	}
}

func (m LibraryListModel) Init() tea.Cmd {
	return nil
}

func (m LibraryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Libraries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Libraries); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m LibraryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Libraries) == 0 {
		b.WriteString(listDimStyle.Render("  no dependencies"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Libraries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		lib := m.Libraries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := iconMissing
		if lib.Present {
			status = iconPresent
		}

		rows = append(rows, []string{cursor, lib.Name, lib.Ref, status, lib.URL})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Library", "Ref", "Status", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			idx := m.Offset + row
			if idx >= len(m.Libraries) {
				return lipgloss.NewStyle()
			}
			lib := m.Libraries[idx]

			base := lipgloss.NewStyle()
			switch {
			case col == 3 && lib.Present:
				base = base.Foreground(colorGreen)
			case col == 3:
				base = base.Foreground(colorYellow)
			case col == 4:
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Libraries))))
	b.WriteString("\n")

	if m.Expanded {
		lib := m.Libraries[m.Cursor]
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render(lib.Name))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  path: ") + lib.Path + "\n")
		for _, f := range lib.DeclaredBy {
			b.WriteString(listDimStyle.Render("  declared by: ") + f + "\n")
		}
	}

	return b.String()
}
