package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"stockscan/cmd/tui/internal/view"
	"stockscan/internal/client"
	"stockscan/internal/config"
	"stockscan/internal/inventory"
	"stockscan/internal/upload"
)

type model struct {
	api       *client.Client
	previewer upload.Previewer

	currentView View

	dashboardView view.DashboardModel
	inventoryView view.CollectionModel[inventory.Item]
	billsView     view.CollectionModel[inventory.Bill]
	uploadView    view.UploadModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewInventory View = 2
	ViewBills     View = 3
	ViewUpload    View = 4
)

func initialModel(previewDir string) model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.API.BaseURL, cfg.API.Timeout)

	previewer, err := upload.NewTempPreviewer(previewDir)
	if err != nil {
		slog.Error("failed to prepare preview directory", "error", err)
		os.Exit(1)
	}

	return model{
		api:           api,
		previewer:     previewer,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(api),
		inventoryView: view.NewInventoryModel(api),
		billsView:     view.NewBillsModel(api),
		uploadView:    view.NewUploadModel(api, previewer),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.api)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.api)

				return m, m.inventoryView.Init()
			case "3":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.api)

				return m, m.billsView.Init()
			case "4":
				m.currentView = ViewUpload
				m.uploadView = view.NewUploadModel(m.api, m.previewer)

				return m, m.uploadView.Init()
			}
		}
	case view.BackMsg:
		if m.currentView == ViewUpload {
			// Leaving the upload view releases the draft's preview.
			m.uploadView.Close()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	// Route everything else to the active view; results arriving for a view
	// that was left are dropped here.
	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.CollectionModel[inventory.Item])
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.CollectionModel[inventory.Bill])
	case ViewUpload:
		var newModel tea.Model
		newModel, cmd = m.uploadView.Update(msg)
		m.uploadView = newModel.(view.UploadModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"StockScan\n\n" +
				"1. Dashboard\n" +
				"2. Inventory\n" +
				"3. Bills\n" +
				"4. Upload Bill\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewBills:
		return m.billsView.View()
	case ViewUpload:
		return m.uploadView.View()
	}

	return "Unknown View"
}

func main() {
	previewDir := filepath.Join(os.TempDir(), "stockscan-previews")
	defer os.RemoveAll(previewDir)

	p := tea.NewProgram(initialModel(previewDir))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
