package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/roster"
)

// rosterCommand lists an imported roster, or browses it interactively.
func (c *CLI) rosterCommand() *cobra.Command {
	var (
		rosterPath  string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List or browse the imported roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Roster
			if rosterPath != "" {
				path = rosterPath
			}
			players, err := roster.LoadFile(path)
			if err != nil {
				return err
			}
			if interactive {
				return browseRoster(players)
			}
			printRoster(players)
			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "roster file (csv or json), overrides config")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the roster interactively")

	return cmd
}

func printRoster(players []roster.Player) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Roster (%d players)", len(players))))
	for _, p := range players {
		factor := composer.SizeFactor(p.Size)
		printKeyValue(p.JerseyNumber, fmt.Sprintf("%s  size %s (%.2fx)  %s",
			p.PlayerName, p.Size, factor, p.Position))
	}
}

func browseRoster(players []roster.Player) error {
	model := NewPlayerListModel(players)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	m, ok := final.(PlayerListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	p := *m.Selected
	printSuccess("Selected %s", p.Label())
	printKeyValue("key", p.Key())
	printKeyValue("size", p.Size)
	if p.TeamName != "" {
		printKeyValue("team", p.TeamName)
	}
	if p.CustomTag != "" {
		printKeyValue("tag", p.CustomTag)
	}
	return nil
}

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// PlayerListModel is the bubbletea model for interactive roster browsing.
type PlayerListModel struct {
	Players  []roster.Player
	Cursor   int
	Selected *roster.Player
	Height   int
	Offset   int
}

// NewPlayerListModel creates a new player list model.
func NewPlayerListModel(players []roster.Player) PlayerListModel {
	return PlayerListModel{
		Players: players,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m PlayerListModel) Init() tea.Cmd {
	return nil
}

func (m PlayerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Players)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			p := m.Players[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlayerListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Player"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Players) {
		end = len(m.Players)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Players[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		pos := p.Position
		if pos == "" {
			pos = "—"
		}
		team := p.TeamName
		if team == "" {
			team = "—"
		}

		rows = append(rows, []string{cursor, p.PlayerName, p.JerseyNumber, p.Size, pos, team})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Player", "No.", "Size", "Position", "Team").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Players) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Players))))

	return b.String()
}
