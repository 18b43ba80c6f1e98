// internal/tui/app.go
//
// This is the main TUI for chefdeck. It uses bubbletea, which follows The
// Elm Architecture: the App model holds all state, Update reacts to
// messages, and View renders the current state to a string.
//
// The console is a sidebar-navigated dashboard. Only the Chefs page talks to
// the backing service; every other page shows static placeholder content.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/feastly/chefdeck/internal/api"
	"github.com/feastly/chefdeck/internal/config"
	"github.com/feastly/chefdeck/internal/logbook"
	"github.com/feastly/chefdeck/internal/roster"
)

// page identifies one entry of the sidebar.
type page int

const (
	pageChefs page = iota
	pageCustomers
	pageOrders
	pagePromotions
	pageCategories
	pageAnalytics
	pageRevenue
	pageReports
)

type appFocus int

const (
	focusSidebar appFocus = iota
	focusContent
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
	logHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	logBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
)

// pageItem implements list.Item for the sidebar entries.
type pageItem struct {
	page  page
	title string
	desc  string
}

func (i pageItem) Title() string       { return i.title }
func (i pageItem) Description() string { return i.desc }
func (i pageItem) FilterValue() string { return i.title }

// App is the main application model. In bubbletea, this holds ALL state.
type App struct {
	cfg      *config.Config
	identity api.Identity
	log      *zap.Logger
	book     *logbook.Logbook

	sidebar list.Model
	chefs   *chefsView

	page      page
	focus     appFocus
	statusMsg string

	width  int
	height int
}

// NewApp creates the console model. svc is the admin API client (or a fake
// in tests); book may be nil.
func NewApp(cfg *config.Config, svc roster.Service, identity api.Identity, log *zap.Logger, book *logbook.Logbook) *App {
	if log == nil {
		log = zap.NewNop()
	}

	items := []list.Item{
		pageItem{pageChefs, "Chefs", "Approvals, rejections, trials"},
		pageItem{pageCustomers, "Customers", "Customer accounts"},
		pageItem{pageOrders, "Orders", "Recent marketplace orders"},
		pageItem{pagePromotions, "Promotions", "Active campaigns"},
		pageItem{pageCategories, "Categories", "Cuisine catalogue"},
		pageItem{pageAnalytics, "Analytics", "Traffic and conversion"},
		pageItem{pageRevenue, "Revenue", "Earnings and payouts"},
		pageItem{pageReports, "Reports", "Exports and summaries"},
	}
	sidebar := list.New(items, list.NewDefaultDelegate(), 0, 0)
	sidebar.Title = "⬡ CHEFDECK"
	sidebar.SetShowStatusBar(false)
	sidebar.SetFilteringEnabled(false)

	app := &App{
		cfg:      cfg,
		identity: identity,
		log:      log,
		book:     book,
		sidebar:  sidebar,
		page:     pageChefs,
		focus:    focusContent,
	}
	app.chefs = newChefsView(app, svc, api.ParseFilter(cfg.DefaultFilter()))
	if book != nil {
		name := identity.Name
		if name == "" {
			name = "operator"
		}
		book.Info("Session opened · %s", name)
	}
	return app
}

// Init is called once when the program starts. The chefs page needs roster
// data immediately.
func (a *App) Init() tea.Cmd {
	return a.chefs.fetchCmd()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sidebar.SetSize(max(0, a.sidebarWidth()-4), max(0, msg.Height-10))
		return a, nil

	case rosterLoadedMsg, actionDoneMsg:
		return a, a.chefs.Update(msg)

	case tea.KeyMsg:
		// The reject dialog captures all keys while open.
		if a.page == pageChefs && a.chefs.dialogOpen() {
			return a, a.chefs.Update(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.focus == focusSidebar {
				return a, tea.Quit
			}
		case "tab":
			if a.focus == focusSidebar {
				a.focus = focusContent
			} else {
				a.focus = focusSidebar
			}
			return a, nil
		case "esc":
			a.focus = focusSidebar
			return a, nil
		case "enter":
			if a.focus == focusSidebar {
				return a, a.selectSidebarPage()
			}
		}
	}

	if a.focus == focusSidebar {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}
	if a.page == pageChefs {
		return a, a.chefs.Update(msg)
	}
	return a, nil
}

// selectSidebarPage switches to the highlighted page. Entering the chefs
// page always reloads the roster so the view never shows stale data.
func (a *App) selectSidebarPage() tea.Cmd {
	item, ok := a.sidebar.SelectedItem().(pageItem)
	if !ok {
		return nil
	}
	a.page = item.page
	a.focus = focusContent
	a.statusMsg = ""
	if item.page == pageChefs {
		return a.chefs.fetchCmd()
	}
	return nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 110
	}
	sidebarWidth := a.sidebarWidth()
	contentWidth := width - sidebarWidth - 4
	if contentWidth < 40 {
		contentWidth = width - 4
	}

	header := headerStyle.Render(a.headerLine())
	sidebarBox := panelStyle.Width(max(20, sidebarWidth)).Render(a.sidebar.View())

	var content string
	if a.page == pageChefs {
		content = a.chefs.View(contentWidth - 4)
	} else {
		content = renderStaticPage(a.page, contentWidth-4)
	}
	contentBox := panelStyle.Width(max(40, contentWidth)).Render(content)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, contentBox)

	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, footerStyle.Render(a.footerLine()))
	return strings.Join(sections, "\n")
}

func (a *App) headerLine() string {
	who := a.identity.Name
	if who == "" {
		who = "operator"
	}
	return fmt.Sprintf("⬡ CHEFDECK · %s", who)
}

func (a *App) footerLine() string {
	hints := "tab → switch focus    enter → open page    ctrl+c → quit"
	if a.page == pageChefs && a.focus == focusContent {
		hints = "f → cycle filter    a → approve    r → reject    t → extend trial    " + hints
	}
	if a.statusMsg != "" {
		return a.statusMsg + "\n" + hints
	}
	return hints
}

func (a *App) renderLogPanel() string {
	if a.book == nil {
		return ""
	}
	lines := a.book.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	head := logHeadStyle.Render("ACTIVITY")
	body := logBodyStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}

func (a *App) sidebarWidth() int {
	if a.width <= 0 {
		return 30
	}
	w := a.width / 4
	if w < 24 {
		w = 24
	}
	if w > 36 {
		w = 36
	}
	return w
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
