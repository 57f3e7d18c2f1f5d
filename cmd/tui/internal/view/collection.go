package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockscan/internal/collection"
)

// CollectionModel is the shared browse screen: one fetch on activation, a
// live text filter over the snapshot, and count/sum totals derived from the
// filtered rows. Inventory and bills are the two instantiations.
type CollectionModel[T any] struct {
	CommonModel

	title      string
	countLabel string
	sumLabel   string
	shortHelp  string

	fetch func(ctx context.Context) ([]T, error)
	desc  collection.Descriptor[T]
	toRow func(T) table.Row

	search   textinput.Model
	table    table.Model
	snapshot []T
	filtered []T
	loading  bool
	err      error
}

type collectionConfig[T any] struct {
	Title       string
	Placeholder string
	CountLabel  string
	SumLabel    string
	Columns     []table.Column
	Desc        collection.Descriptor[T]
	ToRow       func(T) table.Row
	Fetch       func(ctx context.Context) ([]T, error)
}

func newCollectionModel[T any](cfg collectionConfig[T]) CollectionModel[T] {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Width = 48
	ti.Focus()

	t := table.New(
		table.WithColumns(cfg.Columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return CollectionModel[T]{
		title:      cfg.Title,
		countLabel: cfg.CountLabel,
		sumLabel:   cfg.SumLabel,
		shortHelp:  "Esc: back | type to filter | ↑/↓: scroll",
		fetch:      cfg.Fetch,
		desc:       cfg.Desc,
		toRow:      cfg.ToRow,
		search:     ti,
		table:      t,
		loading:    true,
	}
}

func (m CollectionModel[T]) Title() string     { return m.title }
func (m CollectionModel[T]) ShortHelp() string { return m.shortHelp }

func (m CollectionModel[T]) Init() tea.Cmd {
	return m.fetchCmd()
}

// snapshotMsg carries the result of the one fetch per activation.
type snapshotMsg[T any] struct {
	rows []T
	err  error
}

func (m CollectionModel[T]) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		rows, err := m.fetch(ctx)

		return snapshotMsg[T]{rows: rows, err: err}
	}
}

func (m CollectionModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg[T]:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.snapshot = msg.rows
		m.applyFilter()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)

			return m, cmd
		}

		// Everything else edits the filter. A keystroke never re-fetches;
		// the filter is re-applied against the full snapshot.
		before := m.search.Value()

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)

		if m.search.Value() != before {
			m.applyFilter()
		}

		return m, cmd
	}

	return m, nil
}

func (m *CollectionModel[T]) applyFilter() {
	m.filtered = collection.Filter(m.snapshot, m.search.Value(), m.desc)

	rows := make([]table.Row, len(m.filtered))
	for i, item := range m.filtered {
		rows[i] = m.toRow(item)
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m CollectionModel[T]) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Loading %s...", m.title))
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
				"\n\n(Esc to go back)",
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := fmt.Sprintf(
		"%s: %d | %s: %s",
		m.countLabel, len(m.filtered),
		m.sumLabel, FormatAmount(collection.MetricSum(m.filtered, m.desc)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.search.View(),
			tableView,
			lipgloss.NewStyle().PaddingTop(1).Render(footer),
		),
	)
}
