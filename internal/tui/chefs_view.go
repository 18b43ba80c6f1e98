package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastly/chefdeck/internal/api"
	"github.com/feastly/chefdeck/internal/roster"
)

var (
	statsLineStyle = lipgloss.NewStyle().Bold(true)
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	tabIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)
	badgeApproved = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	badgePending  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	badgeRejected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	rowDetailText = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	selectedRow   = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	plainRow    = lipgloss.NewStyle().Padding(0, 0, 1, 0)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F7B801")).
			Padding(0, 1).
			MarginTop(1)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// rosterLoadedMsg signals that a roster fetch finished (either way; the
// controller already holds whatever state survived).
type rosterLoadedMsg struct{}

// actionDoneMsg signals that a mutating action for one chef finished.
type actionDoneMsg struct {
	id string
}

// chefsView renders the chef-approval page and forwards operator intent to
// the roster controller. All asynchronous work goes through tea.Cmd.
type chefsView struct {
	app         *App
	ctrl        *roster.Controller
	selection   int
	reasonInput textinput.Model
}

func newChefsView(app *App, svc roster.Service, filter api.StatusFilter) *chefsView {
	var feed roster.Recorder
	if app.book != nil {
		feed = app.book
	}
	input := textinput.New()
	input.Placeholder = "reason (optional)"
	input.CharLimit = 200
	input.Width = 48
	return &chefsView{
		app:         app,
		ctrl:        roster.New(svc, filter, app.log, feed),
		reasonInput: input,
	}
}

func (v *chefsView) dialogOpen() bool {
	return v.ctrl.Dialog().Open
}

func (v *chefsView) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		v.ctrl.Fetch(context.Background())
		return rosterLoadedMsg{}
	}
}

func (v *chefsView) setFilterCmd(filter api.StatusFilter) tea.Cmd {
	return func() tea.Msg {
		v.ctrl.SetFilter(context.Background(), filter)
		return rosterLoadedMsg{}
	}
}

func (v *chefsView) approveCmd(chefID string) tea.Cmd {
	return func() tea.Msg {
		v.ctrl.Approve(context.Background(), chefID)
		return actionDoneMsg{id: chefID}
	}
}

func (v *chefsView) rejectCmd(chefID, reason string) tea.Cmd {
	return func() tea.Msg {
		v.ctrl.Reject(context.Background(), chefID, reason)
		return actionDoneMsg{id: chefID}
	}
}

func (v *chefsView) extendTrialCmd(chefID string) tea.Cmd {
	return func() tea.Msg {
		v.ctrl.ExtendTrial(context.Background(), chefID)
		return actionDoneMsg{id: chefID}
	}
}

// Update handles messages routed to the chefs page.
func (v *chefsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case rosterLoadedMsg:
		v.clampSelection()
		return nil

	case actionDoneMsg:
		// A still-open dialog means the reject failed; keep the typed reason
		// so the operator can retry.
		if !v.ctrl.Dialog().Open {
			v.reasonInput.SetValue("")
			v.reasonInput.Blur()
		}
		v.clampSelection()
		return nil

	case tea.KeyMsg:
		if v.ctrl.Dialog().Open {
			return v.updateDialog(msg)
		}
		return v.updateList(msg)
	}
	return nil
}

func (v *chefsView) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.ctrl.CloseRejectDialog()
		v.reasonInput.SetValue("")
		v.reasonInput.Blur()
		return nil
	case "enter":
		dialog := v.ctrl.Dialog()
		return v.rejectCmd(dialog.ChefID, v.reasonInput.Value())
	}
	var cmd tea.Cmd
	v.reasonInput, cmd = v.reasonInput.Update(msg)
	v.ctrl.SetDialogReason(v.reasonInput.Value())
	return cmd
}

func (v *chefsView) updateList(msg tea.KeyMsg) tea.Cmd {
	chefs := v.ctrl.Chefs()
	switch msg.String() {
	case "up", "k":
		if v.selection > 0 {
			v.selection--
		}
	case "down", "j":
		if v.selection < len(chefs)-1 {
			v.selection++
		}
	case "f":
		return v.cycleFilter()
	case "a":
		if chef, ok := v.selectedChef(chefs); ok && v.actionable(chef.ID) {
			return v.approveCmd(chef.ID)
		}
	case "r":
		if chef, ok := v.selectedChef(chefs); ok && v.actionable(chef.ID) {
			v.ctrl.OpenRejectDialog(chef.ID)
			v.reasonInput.SetValue("")
			v.reasonInput.Focus()
			return textinput.Blink
		}
	case "t":
		// The original console only offers this when a trial window exists.
		if chef, ok := v.selectedChef(chefs); ok && chef.HasActiveTrial() && v.actionable(chef.ID) {
			return v.extendTrialCmd(chef.ID)
		}
	}
	return nil
}

func (v *chefsView) cycleFilter() tea.Cmd {
	filters := api.Filters()
	current := v.ctrl.Filter()
	next := filters[0]
	for i, f := range filters {
		if f == current {
			next = filters[(i+1)%len(filters)]
			break
		}
	}
	// Best effort: the console reopens on the same filter next session.
	if v.app.cfg != nil {
		if err := v.app.cfg.SetDefaultFilter(string(next)); err != nil {
			v.app.log.Warn("persisting filter preference failed")
		}
	}
	return v.setFilterCmd(next)
}

func (v *chefsView) selectedChef(chefs []api.ChefRecord) (api.ChefRecord, bool) {
	if len(chefs) == 0 || v.selection < 0 || v.selection >= len(chefs) {
		return api.ChefRecord{}, false
	}
	return chefs[v.selection], true
}

// actionable reports whether the row's controls are enabled. This is the
// UI-level guard: once an action is in flight for a chef, that row locks.
func (v *chefsView) actionable(chefID string) bool {
	return v.ctrl.ActionLoading() != chefID
}

func (v *chefsView) clampSelection() {
	count := len(v.ctrl.Chefs())
	if count == 0 {
		v.selection = 0
	} else if v.selection >= count {
		v.selection = count - 1
	}
}

// View renders the chefs page at the given width.
func (v *chefsView) View(width int) string {
	sections := []string{
		v.renderStats(),
		v.renderTabs(),
	}
	if v.ctrl.Loading() {
		sections = append(sections, hintStyle.Render("Loading roster..."))
	}
	sections = append(sections, v.renderRows(width))
	if dialog := v.ctrl.Dialog(); dialog.Open {
		sections = append(sections, v.renderDialog(dialog))
	}
	return strings.Join(sections, "\n")
}

// renderStats shows the platform-wide totals; they cover the whole roster
// even when the list below is filtered.
func (v *chefsView) renderStats() string {
	stats := v.ctrl.Stats()
	return statsLineStyle.Render(fmt.Sprintf(
		"Chefs %d · Approved %d · Pending %d · Rejected %d",
		stats.Total, stats.Approved, stats.Pending, stats.Rejected,
	))
}

func (v *chefsView) renderTabs() string {
	current := v.ctrl.Filter()
	var tabs []string
	for _, f := range api.Filters() {
		label := strings.ToUpper(string(f)[:1]) + string(f)[1:]
		if f == current {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabIdleStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *chefsView) renderRows(width int) string {
	chefs := v.ctrl.Chefs()
	if len(chefs) == 0 {
		return hintStyle.Render("No chefs match this filter.")
	}
	busy := v.ctrl.ActionLoading()
	var rows []string
	for i, chef := range chefs {
		rows = append(rows, v.renderRow(chef, i == v.selection, chef.ID == busy, width))
	}
	return strings.Join(rows, "\n")
}

func (v *chefsView) renderRow(chef api.ChefRecord, selected, busy bool, width int) string {
	line1 := fmt.Sprintf("%s %s · %s", statusBadge(chef.Status()), chef.KitchenName, chef.User.Name)
	line2 := fmt.Sprintf("%s · %.1f★ (%d reviews) · %d orders · %d menus",
		chef.Plan, chef.AvgRating, chef.TotalReviews, chef.OrderCount, chef.MenuCount)
	if chef.TrialEndsAt != nil {
		line2 += fmt.Sprintf(" · trial ends %s", chef.TrialEndsAt.Format("2006-01-02"))
	}
	if reason := chef.RejectionReason; reason != nil && *reason != "" {
		line2 += fmt.Sprintf(" · reason: %s", *reason)
	}
	if busy {
		line2 += " · working..."
	}
	content := line1 + "\n" + rowDetailText.Render(line2)
	if selected {
		return selectedRow.Width(max(20, width-2)).Render(content)
	}
	return plainRow.Width(max(20, width)).Render(content)
}

func (v *chefsView) renderDialog(dialog roster.RejectDialog) string {
	title := fmt.Sprintf("Reject chef %s", dialog.ChefID)
	for _, chef := range v.ctrl.Chefs() {
		if chef.ID == dialog.ChefID {
			title = fmt.Sprintf("Reject %s", chef.KitchenName)
			break
		}
	}
	body := strings.Join([]string{
		statsLineStyle.Render(title),
		v.reasonInput.View(),
		hintStyle.Render("enter → confirm reject    esc → cancel"),
	}, "\n")
	return dialogStyle.Render(body)
}

func statusBadge(status api.ChefStatus) string {
	switch status {
	case api.StatusApproved:
		return badgeApproved.Render("● approved")
	case api.StatusRejected:
		return badgeRejected.Render("● rejected")
	default:
		return badgePending.Render("● pending")
	}
}
