package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockscan/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	src dashboard.Source

	spinner spinner.Model
	stats   *dashboard.Stats
	loading bool
	err     error
}

func NewDashboardModel(src dashboard.Source) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		src:     src,
		spinner: s,
		loading: true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back" }

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadStatsCmd())
}

type statsMsg struct {
	stats *dashboard.Stats
	err   error
}

func (m DashboardModel) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		stats, err := dashboard.Load(ctx, m.src)

		return statsMsg{stats: stats, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		m.loading = false
		m.stats = msg.stats
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, Back
		}

		return m, nil
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Loading dashboard...", m.spinner.View()),
		)
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error fetching dashboard data") +
				"\n\n" + m.err.Error() +
				"\n\n(Esc to go back)",
		)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Items", strconv.Itoa(m.stats.TotalItems)),
		statCard("Total Value", FormatAmount(m.stats.TotalStockValue)),
		statCard("Recent Bills", strconv.Itoa(m.stats.RecentBills)),
		statCard("Low Stock Items", strconv.Itoa(m.stats.LowStockItems)),
	)

	return lipgloss.NewStyle().Padding(1).Render(cards)
}

func statCard(label, value string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		Margin(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Faint(true).Render(label),
				lipgloss.NewStyle().Bold(true).Render(value),
			),
		)
}
