package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feastly/chefdeck/internal/api"
	"github.com/feastly/chefdeck/internal/config"
)

type fakeService struct {
	chefs    []api.ChefRecord
	stats    api.ChefStats
	lists    int
	approved []string
	rejected map[string]string
	extended []string
}

func (f *fakeService) ListChefs(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error) {
	f.lists++
	return f.chefs, f.stats, nil
}

func (f *fakeService) ApproveChef(ctx context.Context, chefID string) error {
	f.approved = append(f.approved, chefID)
	return nil
}

func (f *fakeService) RejectChef(ctx context.Context, chefID, reason string) error {
	if f.rejected == nil {
		f.rejected = map[string]string{}
	}
	f.rejected[chefID] = reason
	return nil
}

func (f *fakeService) ExtendChefTrial(ctx context.Context, chefID string) error {
	f.extended = append(f.extended, chefID)
	return nil
}

func newTestApp(t *testing.T, svc *fakeService) *App {
	t.Helper()
	home := t.TempDir()
	if err := config.InitChefdeckDir(home); err != nil {
		t.Fatalf("init chefdeck dir: %v", err)
	}
	cfg, err := config.NewConfig(home)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	return NewApp(cfg, svc, api.Identity{Role: api.RoleAdmin, Name: "Dana"}, nil, nil)
}

// runCmd executes a command and feeds resulting messages back into the app,
// the way the bubbletea runtime would.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) *App {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return app
		}
		var model tea.Model
		model, cmd = app.Update(msg)
		next, ok := model.(*App)
		if !ok {
			t.Fatalf("update returned unexpected model type %T", model)
		}
		app = next
	}
	return app
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func pressKey(t *testing.T, app *App, key string) *App {
	t.Helper()
	model, cmd := app.Update(keyMsg(key))
	next := model.(*App)
	return runCmd(t, next, cmd)
}

func TestInitLoadsRoster(t *testing.T) {
	svc := &fakeService{
		chefs: []api.ChefRecord{{ID: "c1", KitchenName: "Mama Rosa"}},
		stats: api.ChefStats{Total: 1, Pending: 1},
	}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	if svc.lists != 1 {
		t.Fatalf("lists = %d, want 1", svc.lists)
	}
	view := app.View()
	if !strings.Contains(view, "Mama Rosa") {
		t.Fatalf("view missing roster row:\n%s", view)
	}
}

func TestApproveKeyTriggersAction(t *testing.T) {
	svc := &fakeService{
		chefs: []api.ChefRecord{{ID: "c1", KitchenName: "Mama Rosa"}},
		stats: api.ChefStats{Total: 1, Pending: 1},
	}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	app = pressKey(t, app, "a")

	if len(svc.approved) != 1 || svc.approved[0] != "c1" {
		t.Fatalf("approved = %v, want [c1]", svc.approved)
	}
	// Approve resynchronizes with a full reload.
	if svc.lists != 2 {
		t.Fatalf("lists = %d, want 2", svc.lists)
	}
}

func TestRejectDialogFlow(t *testing.T) {
	svc := &fakeService{
		chefs: []api.ChefRecord{{ID: "c1", KitchenName: "Mama Rosa"}},
		stats: api.ChefStats{Total: 1, Pending: 1},
	}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	model, _ := app.Update(keyMsg("r"))
	app = model.(*App)
	if !app.chefs.dialogOpen() {
		t.Fatal("expected reject dialog to open")
	}

	for _, r := range "spam" {
		model, _ = app.Update(keyMsg(string(r)))
		app = model.(*App)
	}
	app = pressKey(t, app, "enter")

	if got := svc.rejected["c1"]; got != "spam" {
		t.Fatalf("rejected reason = %q, want spam", got)
	}
	if app.chefs.dialogOpen() {
		t.Fatal("dialog must close after a successful reject")
	}
}

func TestRejectDialogCancel(t *testing.T) {
	svc := &fakeService{
		chefs: []api.ChefRecord{{ID: "c1", KitchenName: "Mama Rosa"}},
	}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	model, _ := app.Update(keyMsg("r"))
	app = model.(*App)
	app = pressKey(t, app, "esc")

	if app.chefs.dialogOpen() {
		t.Fatal("esc must close the dialog")
	}
	if len(svc.rejected) != 0 {
		t.Fatalf("no reject should be sent, got %v", svc.rejected)
	}
}

func TestExtendTrialRequiresActiveTrial(t *testing.T) {
	svc := &fakeService{
		chefs: []api.ChefRecord{{ID: "c1", KitchenName: "Mama Rosa"}}, // no trialEndsAt
	}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	app = pressKey(t, app, "t")

	if len(svc.extended) != 0 {
		t.Fatalf("extend must not fire without an active trial, got %v", svc.extended)
	}
}

func TestFilterCycleRefetchesAndPersists(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	app = pressKey(t, app, "f")

	if got := app.chefs.ctrl.Filter(); got != api.FilterPending {
		t.Fatalf("filter = %s, want pending", got)
	}
	if svc.lists != 2 {
		t.Fatalf("lists = %d, want 2 (initial + filter change)", svc.lists)
	}
	reloaded, err := config.NewConfig(app.cfg.HomeDir)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if got := reloaded.DefaultFilter(); got != "pending" {
		t.Fatalf("persisted filter = %q, want pending", got)
	}
}

func TestSidebarNavigationToStaticPage(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	app = pressKey(t, app, "tab") // focus sidebar
	app = pressKey(t, app, "down")
	app = pressKey(t, app, "enter")

	if app.page != pageCustomers {
		t.Fatalf("page = %d, want customers", app.page)
	}
	if !strings.Contains(app.View(), "Total customers") {
		t.Fatal("customers placeholder content missing")
	}
}

func TestReturningToChefsPageRefetches(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(t, svc)
	app = runCmd(t, app, app.Init())

	app = pressKey(t, app, "tab")
	app = pressKey(t, app, "down")
	app = pressKey(t, app, "enter") // customers
	listsBefore := svc.lists

	app = pressKey(t, app, "tab")
	// sidebar selection is still on customers; move back up to chefs
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyUp})
	app = model.(*App)
	app = pressKey(t, app, "enter")

	if app.page != pageChefs {
		t.Fatalf("page = %d, want chefs", app.page)
	}
	if svc.lists != listsBefore+1 {
		t.Fatalf("lists = %d, want %d (reload on entry)", svc.lists, listsBefore+1)
	}
}
