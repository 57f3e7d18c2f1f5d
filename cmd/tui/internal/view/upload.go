package view

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"stockscan/internal/inventory"
	"stockscan/internal/upload"
)

type uploadState int

const (
	uploadStatePick uploadState = iota
	uploadStateForm
	uploadStateSubmitting
)

type UploadModel struct {
	CommonModel
	api   upload.Submitter
	draft *upload.Draft

	state      uploadState
	filePicker filepicker.Model
	form       *huh.Form
	spinner    spinner.Model

	billType inventory.BillType
	status   string
}

func NewUploadModel(api upload.Submitter, previewer upload.Previewer) UploadModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".jpg", ".jpeg", ".png"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15
	fp.AutoHeight = false

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return UploadModel{
		api:        api,
		draft:      upload.NewDraft(previewer),
		filePicker: fp,
		spinner:    s,
		billType:   inventory.BillTypePurchase,
	}
}

func (m UploadModel) Title() string { return "Upload Bill" }

func (m UploadModel) ShortHelp() string {
	switch m.state {
	case uploadStateForm:
		return "Enter: upload | Esc: choose another file"
	case uploadStateSubmitting:
		return "Uploading..."
	}

	return "Esc: back | Enter: select"
}

func (m UploadModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

// Close releases the draft's preview resource. Called when the view is left.
func (m UploadModel) Close() {
	m.draft.Close()
}

type submitDoneMsg struct {
	err error
}

func (m UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.draft.CompleteSubmit(msg.err)

		if msg.err != nil {
			// The file and preview are still held; offer an immediate retry.
			m.state = uploadStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.status = "Bill uploaded successfully!"
		m.state = uploadStatePick

		return m, m.filePicker.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}
	}

	switch m.state {
	case uploadStatePick:
		return m.updatePick(msg)
	case uploadStateForm:
		return m.updateForm(msg)
	case uploadStateSubmitting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m UploadModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case uploadStateForm:
		m.state = uploadStatePick
		return m, m.filePicker.Init()
	case uploadStateSubmitting:
		// One submission in flight; let it finish.
		return m, nil
	}

	return m, Back
}

func (m UploadModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		if err := m.draft.SelectFile(path); err != nil {
			m.status = err.Error()
			return m, cmd
		}

		m.status = ""
		m.billType = m.draft.BillType()
		m.state = uploadStateForm
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	if didSelect, path := m.filePicker.DidSelectDisabledFile(msg); didSelect {
		m.status = fmt.Sprintf("%s is not a bill image (jpg, jpeg or png)", path)
	}

	return m, cmd
}

func (m UploadModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if v, ok := m.form.Get("bill_type").(inventory.BillType); ok {
		m.billType = v
	}

	m.draft.SetBillType(m.billType)

	req, err := m.draft.BeginSubmit()
	if err != nil {
		if errors.Is(err, upload.ErrSubmitInFlight) {
			return m, nil
		}

		m.status = err.Error()
		m.state = uploadStatePick

		return m, m.filePicker.Init()
	}

	m.state = uploadStateSubmitting

	return m, tea.Batch(m.spinner.Tick, m.submitCmd(req))
}

func (m UploadModel) submitCmd(req upload.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return submitDoneMsg{err: m.api.SubmitBill(ctx, req.Path, req.BillType)}
	}
}

func (m UploadModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[inventory.BillType]().
				Key("bill_type").
				Title("Bill Type").
				Options(
					huh.NewOption("Purchase", inventory.BillTypePurchase),
					huh.NewOption("Sale", inventory.BillTypeSale),
				).
				Value(&m.billType),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m UploadModel) View() string {
	switch m.state {
	case uploadStatePick:
		return m.viewPick()
	case uploadStateForm:
		return m.viewForm()
	case uploadStateSubmitting:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Uploading bill...", m.spinner.View()),
		)
	}

	return ""
}

func (m UploadModel) viewPick() string {
	header := "Select a bill image to upload:"

	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		if m.draft.Succeeded() {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		}

		header = style.Render(m.status) + "\n\n" + header
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("%s\n\n%s", header, m.filePicker.View()),
	)
}

func (m UploadModel) viewForm() string {
	info := fmt.Sprintf("File: %s", m.draft.File())

	if preview := m.draft.Preview(); preview != nil {
		line := fmt.Sprintf("Preview: %s", preview.Path())
		if fi, err := os.Stat(preview.Path()); err == nil {
			line = fmt.Sprintf("%s (%d KB)", line, fi.Size()/1024)
		}

		info += "\n" + line
	}

	content := fmt.Sprintf("%s\n\n%s", info, m.form.View())

	if err := m.draft.Err(); err != nil {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(err.Error()) +
			"\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
