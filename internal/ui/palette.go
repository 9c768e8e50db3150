package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/tview"
)

// PaletteOption is one palette entry resolved against the command registry.
type PaletteOption struct {
	Category string
	Command  string
	Label    string
	Caption  string
}

func (o PaletteOption) display() string {
	if strings.TrimSpace(o.Category) == "" {
		return o.Label
	}
	return o.Category + ": " + o.Label
}

// Prompt configures how the palette is shown.
type Prompt struct {
	Backend     string
	Title       string
	Interactive bool
	In          io.Reader
	Out         io.Writer
}

var errInvalidSelection = errors.New("invalid selection")

// PickCommand shows the palette and returns the chosen command id. ok is false
// when the user cancelled or there was nothing to pick.
func PickCommand(prompt Prompt, options []PaletteOption) (string, bool, error) {
	if len(options) == 0 {
		return "", false, nil
	}

	var firstErr error
	for _, candidate := range backendCandidates(prompt.Backend, prompt.Interactive) {
		var (
			command string
			ok      bool
			err     error
		)
		switch candidate {
		case BackendBubbleTea:
			command, ok, err = pickWithBubbleTea(prompt.Title, options)
		case BackendHuh:
			command, ok, err = pickWithHuh(prompt.Title, options)
		case BackendTView:
			command, ok, err = pickWithTView(prompt.Title, options)
		case BackendPlain:
			command, ok, err = pickPlain(prompt, options)
			if errors.Is(err, errInvalidSelection) {
				return "", false, err
			}
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return command, ok, nil
	}
	return "", false, firstErr
}

type paletteItem struct {
	option PaletteOption
}

func (i paletteItem) Title() string       { return i.option.display() }
func (i paletteItem) Description() string { return i.option.Caption }
func (i paletteItem) FilterValue() string {
	return i.option.display() + " " + i.option.Caption + " " + i.option.Command
}

type paletteModel struct {
	list      list.Model
	selection string
	cancelled bool
	options   int
}

func newPaletteModel(title string, options []PaletteOption) paletteModel {
	items := make([]list.Item, 0, len(options))
	for _, option := range options {
		items = append(items, paletteItem{option: option})
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	width, height := palettePickerSize(80, 24, len(items))
	picker := list.New(items, delegate, width, height)
	picker.Title = title
	picker.SetShowHelp(false)
	picker.SetFilteringEnabled(true)

	return paletteModel{list: picker, options: len(items)}
}

func (m paletteModel) Init() tea.Cmd { return nil }

func (m paletteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := palettePickerSize(k.Width, k.Height, m.options)
		m.list.SetSize(width, height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch k.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(paletteItem); ok {
				m.selection = item.option.Command
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m paletteModel) View() string {
	return m.list.View()
}

func pickWithBubbleTea(title string, options []PaletteOption) (string, bool, error) {
	final, err := tea.NewProgram(newPaletteModel(title, options), tea.WithAltScreen()).Run()
	if err != nil {
		return "", false, err
	}
	out, ok := final.(paletteModel)
	if !ok || out.cancelled || out.selection == "" {
		return "", false, nil
	}
	return out.selection, true, nil
}

func pickWithHuh(title string, options []PaletteOption) (string, bool, error) {
	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, option := range options {
		huhOptions = append(huhOptions, huh.NewOption(option.display(), option.Command))
	}
	choice := huhOptions[0].Value

	prompt := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Filtering(true).
		Height(huhSelectHeight(len(huhOptions))).
		Value(&choice).
		WithTheme(huh.ThemeCharm())

	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return choice, choice != "", nil
}

func pickWithTView(title string, options []PaletteOption) (string, bool, error) {
	app := tview.NewApplication()
	listView := tview.NewList()
	listView.SetBorder(true)
	listView.SetTitle(title)
	listView.ShowSecondaryText(true)

	selected := ""
	for _, option := range options {
		current := option
		listView.AddItem(current.display(), current.Caption, 0, func() {
			selected = current.Command
			app.Stop()
		})
	}
	listView.SetDoneFunc(func() {
		app.Stop()
	})

	if err := app.SetRoot(listView, true).SetFocus(listView).Run(); err != nil {
		return "", false, err
	}
	return selected, selected != "", nil
}

// pickPlain prints the palette grouped by category and reads a number.
func pickPlain(prompt Prompt, options []PaletteOption) (string, bool, error) {
	if prompt.Out == nil || prompt.In == nil {
		return "", false, fmt.Errorf("plain palette needs an input and an output")
	}
	if _, err := io.WriteString(prompt.Out, renderPlainPalette(prompt.Out, prompt.Title, options)); err != nil {
		return "", false, err
	}
	fmt.Fprintf(prompt.Out, "Select a command [1-%d], empty to cancel: ", len(options))

	line, err := bufio.NewReader(prompt.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" || answer == "q" {
		return "", false, nil
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 1 || n > len(options) {
		return "", false, fmt.Errorf("%w: %q", errInvalidSelection, answer)
	}
	return options[n-1].Command, true, nil
}

func renderPlainPalette(w io.Writer, title string, options []PaletteOption) string {
	renderer := lipgloss.NewRenderer(w)
	titleStyle := renderer.NewStyle().Bold(true).Underline(true)
	categoryStyle := renderer.NewStyle().Bold(true)
	captionStyle := renderer.NewStyle().Faint(true)

	var b strings.Builder
	if strings.TrimSpace(title) != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	lastCategory := "\x00"
	for idx, option := range options {
		if option.Category != lastCategory {
			lastCategory = option.Category
			if strings.TrimSpace(option.Category) != "" {
				b.WriteString(categoryStyle.Render(option.Category))
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "  %d) %s", idx+1, option.Label)
		if caption := strings.TrimSpace(option.Caption); caption != "" {
			b.WriteString("  ")
			b.WriteString(captionStyle.Render(caption))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func palettePickerSize(termWidth, termHeight, optionCount int) (int, int) {
	if termWidth <= 0 {
		termWidth = 80
	}
	if termHeight <= 0 {
		termHeight = 24
	}
	if optionCount < 1 {
		optionCount = 1
	}

	maxWidth := termWidth
	minWidth := 32
	if maxWidth < minWidth {
		minWidth = maxWidth
	}
	width := clampInt(termWidth-4, minWidth, maxWidth)

	// Two lines per item: label and caption.
	visibleItems := clampInt(optionCount, 2, 8)
	desiredHeight := visibleItems*2 + 6

	maxHeight := termHeight - 2
	if maxHeight <= 0 {
		maxHeight = termHeight
	}
	minHeight := 8
	if maxHeight < minHeight {
		minHeight = maxHeight
	}
	height := clampInt(desiredHeight, minHeight, maxHeight)
	return width, height
}

func huhSelectHeight(optionCount int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	return clampInt(optionCount+1, 4, 10)
}
