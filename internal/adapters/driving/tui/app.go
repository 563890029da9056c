package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// viewState identifies which screen is active.
type viewState int

const (
	// viewSearch shows the query input.
	viewSearch viewState = iota

	// viewResults shows the result list.
	viewResults

	// viewText shows the full decision text.
	viewText
)

// searchDoneMsg carries the outcome of an index search.
type searchDoneMsg struct {
	entries []domain.IndexEntry
	err     error
}

// readDoneMsg carries the outcome of a full-text read.
type readDoneMsg struct {
	object *domain.StorageObject
	err    error
}

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *Styles
	state  viewState

	input    textinput.Model
	viewport viewport.Model

	// entries are the current search rows, cursor the selected one.
	// Entries double as the locator cache for the read path.
	entries []domain.IndexEntry
	cursor  int

	searching bool
	reading   bool
	err       error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "keyword, daire or record id"
	input.Focus()
	input.CharLimit = 120

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: DefaultStyles(),
		state:  viewSearch,
		input:  input,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("emsal - Decision Archive"),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 4
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case searchDoneMsg:
		a.searching = false
		a.err = msg.err
		if msg.err == nil {
			a.entries = msg.entries
			a.cursor = 0
			a.state = viewResults
		}
		return a, nil

	case readDoneMsg:
		a.reading = false
		a.err = msg.err
		if msg.err == nil {
			a.viewport.SetContent(renderDecision(msg.object))
			a.viewport.GotoTop()
			a.state = viewText
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.state {
	case viewSearch:
		switch msg.Type {
		case tea.KeyEnter:
			return a, a.searchCmd(a.input.Value())
		case tea.KeyEsc:
			return a, tea.Quit
		}
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case viewResults:
		switch msg.String() {
		case "q", "esc":
			a.state = viewSearch
			a.input.Focus()
			return a, textinput.Blink
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.entries)-1 {
				a.cursor++
			}
		case "enter":
			if len(a.entries) > 0 {
				return a, a.readCmd(a.entries[a.cursor].ID)
			}
		}
		return a, nil

	case viewText:
		switch msg.String() {
		case "q", "esc":
			a.state = viewResults
			return a, nil
		}
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	return a, nil
}

// searchCmd runs an index search in the background. A bare numeric
// query searches by record id, anything else by summary keyword.
func (a *App) searchCmd(query string) tea.Cmd {
	a.searching = true
	a.err = nil

	filters := domain.SearchFilters{}
	query = strings.TrimSpace(query)
	if id, err := strconv.ParseInt(query, 10, 64); err == nil && query != "" {
		filters.ID = id
	} else {
		filters.Keyword = query
	}

	return func() tea.Msg {
		entries, err := a.ports.Read.Search(a.ctx, filters)
		return searchDoneMsg{entries: entries, err: err}
	}
}

// readCmd fetches the full text of the selected decision, reusing the
// current rows as the locator cache.
func (a *App) readCmd(id int64) tea.Cmd {
	a.reading = true
	a.err = nil

	cache := a.entries
	return func() tea.Msg {
		obj, err := a.ports.Read.ReadDecision(a.ctx, id, cache)
		return readDoneMsg{object: obj, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("emsal"))
	b.WriteString("\n\n")

	switch a.state {
	case viewSearch:
		b.WriteString("Search decisions:\n\n")
		b.WriteString(a.input.View())
		b.WriteString("\n\n")
		if a.searching {
			b.WriteString(a.styles.Muted.Render("Searching..."))
			b.WriteString("\n")
		}
		b.WriteString(a.styles.Muted.Render("enter: search • esc: quit"))

	case viewResults:
		if len(a.entries) == 0 {
			b.WriteString("No results found.\n\n")
		}
		for i := range a.entries {
			line := resultLine(&a.entries[i])
			if i == a.cursor {
				b.WriteString(a.styles.Selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if a.reading {
			b.WriteString(a.styles.Muted.Render("Fetching full text..."))
			b.WriteString("\n")
		}
		b.WriteString(a.styles.Muted.Render("enter: read • j/k: move • esc: new search"))

	case viewText:
		b.WriteString(a.viewport.View())
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("j/k: scroll • esc: back to results"))
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	}

	return b.String()
}

func resultLine(e *domain.IndexEntry) string {
	daire := "-"
	if e.Daire != nil {
		daire = *e.Daire
	}
	date := ""
	if e.KararTarihi != nil {
		date = *e.KararTarihi
	}
	return fmt.Sprintf("%d  %s  %s", e.ID, daire, date)
}

func renderDecision(obj *domain.StorageObject) string {
	var b strings.Builder
	if obj.Daire != nil {
		b.WriteString(*obj.Daire)
		b.WriteString("\n")
	}
	if obj.EsasNo != nil && obj.KararNo != nil {
		fmt.Fprintf(&b, "E. %s  K. %s\n", *obj.EsasNo, *obj.KararNo)
	}
	if obj.KararTarihi != nil {
		b.WriteString(*obj.KararTarihi)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(obj.Content)
	return b.String()
}
