package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 20
	maxScores          = 100
	minWidthForDate    = 64
)

// scoreTabs filter the board by game mode; "" shows every game.
var scoreTabs = []struct {
	mode, title string
}{
	{"", "All games"},
	{storage.ModeHuman, "Players"},
	{storage.ModeBot, "Bot"},
}

var scoreColumns = []table.Column{
	{Title: "Rank", Width: 5},
	{Title: "Name", Width: 12},
	{Title: "Score", Width: 9},
	{Title: "Lvl", Width: 4},
	{Title: "Lines", Width: 6},
	{Title: "Tetris", Width: 7},
	{Title: "Date", Width: 13},
}

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	scoreFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	scoreDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreEmptyStyle = scoreDimStyle.Italic(true).Padding(2, 4)
	scoreTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

// scoreKeys are the scoreboard bindings. Left/right double as tab switches.
type scoreKeys struct {
	Scroll, Next, Prev, Back, Quit key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultScoreKeys() scoreKeys {
	return scoreKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev tab")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best games, one tab per mode.
type ScoreboardModel struct {
	store  *storage.Store
	keys   scoreKeys
	help   help.Model
	table  table.Model
	tab    int
	scores []storage.ScoreEntry
	stats  *storage.Stats

	width, height int
	showSidebar   bool
	withDate      bool
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard. A nil store shows an empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{store: store, keys: defaultScoreKeys(), help: help.New()}
	m.resize(width, height)
	m.load()
	return m
}

// resize rebuilds the table for a new terminal size. Narrow terminals lose
// the sidebar first and then the date column.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.showSidebar = width >= minWidthForSidebar

	avail := width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}
	m.withDate = avail >= minWidthForDate
	columns := scoreColumns
	if !m.withDate {
		columns = columns[:len(columns)-1]
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
		table.WithStyles(styles),
	)
	m.fillRows()
}

func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		mode := scoreTabs[m.tab].mode
		if scores, err := m.store.TopScores(mode, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.Stats(mode); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		name := e.Name
		if e.Mode == storage.ModeBot {
			name += " (bot)"
		}
		row := table.Row{
			"#" + strconv.Itoa(i+1),
			name,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Lines),
			strconv.Itoa(e.Tetrises),
		}
		if m.withDate {
			row = append(row, e.CreatedAt.Local().Format("Jan 02 15:04"))
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(scoreTabs)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab + len(scoreTabs) - 1) % len(scoreTabs)
			m.load()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var body string
	if len(m.scores) == 0 {
		body = scoreEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	} else {
		body = m.table.View()
	}
	body = scoreFrameStyle.Render(body)

	if m.showSidebar {
		side := scoreFrameStyle.Width(sidebarWidth).Render(
			"Show\n" + strings.Repeat("-", sidebarWidth-4) + "\n" + m.renderTabs("\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", body)
	} else {
		body = centerText(m.renderTabs(" "), m.width) + "\n\n" + centerText(body, m.width)
	}

	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render(centerText("HIGH SCORES - "+scoreTabs[m.tab].title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(centerText(m.renderStats(), m.width))
	b.WriteString("\n")
	b.WriteString(scoreDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs lists the tab titles with the active one highlighted.
func (m ScoreboardModel) renderTabs(sep string) string {
	titles := make([]string, len(scoreTabs))
	for i, tab := range scoreTabs {
		switch {
		case i == m.tab && m.showSidebar:
			titles[i] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + tab.title)
		case i == m.tab:
			titles[i] = scoreTabStyle.Render(tab.title)
		case m.showSidebar:
			titles[i] = "  " + tab.title
		default:
			titles[i] = scoreDimStyle.Render(" " + tab.title + " ")
		}
	}
	return strings.Join(titles, sep)
}

// renderStats summarizes the current tab in one line.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("%d games  |  best %d  |  avg %.0f  |  %d lines  |  %d tetrises",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalLines, m.stats.TotalTetrises)
	if !m.stats.LastPlayed.IsZero() {
		line += "  |  last " + m.stats.LastPlayed.Local().Format("Jan 02")
	}
	return line
}

func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }
func (m ScoreboardModel) IsQuitting() bool  { return m.quitting }

// RunScoreboard shows the scoreboard as a standalone program.
func RunScoreboard(store *storage.Store, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	return err
}
