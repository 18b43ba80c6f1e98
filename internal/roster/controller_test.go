package roster

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastly/chefdeck/internal/api"
)

type fakeService struct {
	listFn  func(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error)
	approve func(ctx context.Context, chefID string) error
	reject  func(ctx context.Context, chefID, reason string) error
	extend  func(ctx context.Context, chefID string) error
	listens int
}

func (f *fakeService) ListChefs(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error) {
	f.listens++
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, api.ChefStats{}, nil
}

func (f *fakeService) ApproveChef(ctx context.Context, chefID string) error {
	if f.approve != nil {
		return f.approve(ctx, chefID)
	}
	return nil
}

func (f *fakeService) RejectChef(ctx context.Context, chefID, reason string) error {
	if f.reject != nil {
		return f.reject(ctx, chefID, reason)
	}
	return nil
}

func (f *fakeService) ExtendChefTrial(ctx context.Context, chefID string) error {
	if f.extend != nil {
		return f.extend(ctx, chefID)
	}
	return nil
}

func pendingChef(id string) api.ChefRecord {
	return api.ChefRecord{ID: id, KitchenName: "Kitchen " + id}
}

func fixedRoster(chefs []api.ChefRecord, stats api.ChefStats) *fakeService {
	return &fakeService{
		listFn: func(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error) {
			return chefs, stats, nil
		},
	}
}

func TestFetchReplacesRosterAndStats(t *testing.T) {
	stats := api.ChefStats{Total: 2, Pending: 2}
	svc := fixedRoster([]api.ChefRecord{pendingChef("c1"), pendingChef("c2")}, stats)
	ctrl := New(svc, api.FilterAll, nil, nil)

	ctrl.Fetch(context.Background())

	require.Len(t, ctrl.Chefs(), 2)
	assert.Equal(t, stats, ctrl.Stats())
	assert.False(t, ctrl.Loading())
}

func TestStatsPartitionInvariant(t *testing.T) {
	stats := api.ChefStats{Total: 5, Approved: 3, Pending: 1, Rejected: 1}
	svc := fixedRoster([]api.ChefRecord{pendingChef("c1")}, stats)
	ctrl := New(svc, api.FilterPending, nil, nil)

	ctrl.Fetch(context.Background())

	got := ctrl.Stats()
	assert.Equal(t, got.Total, got.Approved+got.Pending+got.Rejected)
}

func TestIdempotentReload(t *testing.T) {
	svc := fixedRoster(
		[]api.ChefRecord{pendingChef("c1"), pendingChef("c2")},
		api.ChefStats{Total: 2, Pending: 2},
	)
	ctrl := New(svc, api.FilterAll, nil, nil)

	ctrl.Fetch(context.Background())
	first, firstStats := ctrl.Chefs(), ctrl.Stats()
	ctrl.Fetch(context.Background())

	assert.Equal(t, first, ctrl.Chefs())
	assert.Equal(t, firstStats, ctrl.Stats())
}

func TestFetchFailureLeavesStateUntouched(t *testing.T) {
	svc := fixedRoster([]api.ChefRecord{pendingChef("c1")}, api.ChefStats{Total: 1, Pending: 1})
	ctrl := New(svc, api.FilterAll, nil, nil)
	ctrl.Fetch(context.Background())

	svc.listFn = func(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error) {
		return nil, api.ChefStats{}, &api.Error{Kind: api.KindTransport, Op: "list chefs"}
	}
	ctrl.Fetch(context.Background())

	require.Len(t, ctrl.Chefs(), 1)
	assert.Equal(t, "c1", ctrl.Chefs()[0].ID)
	assert.Equal(t, api.ChefStats{Total: 1, Pending: 1}, ctrl.Stats())
	assert.False(t, ctrl.Loading(), "loading must clear even on failure")
}

func TestSetFilterTriggersFetch(t *testing.T) {
	var gotFilter api.StatusFilter
	svc := &fakeService{
		listFn: func(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error) {
			gotFilter = filter
			return nil, api.ChefStats{}, nil
		},
	}
	ctrl := New(svc, api.FilterAll, nil, nil)

	ctrl.SetFilter(context.Background(), api.FilterRejected)

	assert.Equal(t, api.FilterRejected, ctrl.Filter())
	assert.Equal(t, api.FilterRejected, gotFilter)
	assert.Equal(t, 1, svc.listens)
}

func TestApproveTriggersReload(t *testing.T) {
	verified := pendingChef("c1")
	verified.IsVerified = true
	svc := &fakeService{}
	approved := false
	svc.approve = func(ctx context.Context, chefID string) error {
		approved = true
		return nil
	}
	svc.listFn = func(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error) {
		if approved {
			return []api.ChefRecord{verified}, api.ChefStats{Total: 1, Approved: 1}, nil
		}
		return []api.ChefRecord{pendingChef("c1")}, api.ChefStats{Total: 1, Pending: 1}, nil
	}
	ctrl := New(svc, api.FilterAll, nil, nil)
	ctrl.Fetch(context.Background())

	ctrl.Approve(context.Background(), "c1")

	require.Len(t, ctrl.Chefs(), 1)
	assert.True(t, ctrl.Chefs()[0].IsVerified, "reload after approve must show the verified record")
	assert.Equal(t, 2, svc.listens, "approve must resynchronize with a full reload")
	assert.Empty(t, ctrl.ActionLoading())
}

func TestApproveFailureLeavesRosterAndClearsGuard(t *testing.T) {
	svc := fixedRoster([]api.ChefRecord{pendingChef("c1")}, api.ChefStats{Total: 1, Pending: 1})
	ctrl := New(svc, api.FilterAll, nil, nil)
	ctrl.Fetch(context.Background())
	fetchesBefore := svc.listens

	svc.approve = func(ctx context.Context, chefID string) error {
		return errors.New("boom")
	}
	ctrl.Approve(context.Background(), "c1")

	assert.Equal(t, fetchesBefore, svc.listens, "failed approve must not reload")
	assert.False(t, ctrl.Chefs()[0].IsVerified)
	assert.Empty(t, ctrl.ActionLoading(), "guard must clear on failure")
}

func TestRejectSuccessClearsDialogAndReloads(t *testing.T) {
	var gotReason string
	svc := &fakeService{
		reject: func(ctx context.Context, chefID, reason string) error {
			gotReason = reason
			return nil
		},
	}
	ctrl := New(svc, api.FilterAll, nil, nil)
	ctrl.OpenRejectDialog("c3")
	ctrl.SetDialogReason("menu photos missing")

	ctrl.Reject(context.Background(), "c3", "menu photos missing")

	assert.Equal(t, "menu photos missing", gotReason)
	dialog := ctrl.Dialog()
	assert.False(t, dialog.Open)
	assert.Empty(t, dialog.ChefID)
	assert.Empty(t, dialog.Reason)
	assert.Equal(t, 1, svc.listens)
	assert.Empty(t, ctrl.ActionLoading())
}

func TestRejectFailureKeepsDialogOpen(t *testing.T) {
	svc := &fakeService{
		reject: func(ctx context.Context, chefID, reason string) error {
			return &api.Error{Kind: api.KindApplication, Op: "reject chef"}
		},
	}
	ctrl := New(svc, api.FilterAll, nil, nil)
	ctrl.OpenRejectDialog("c3")
	ctrl.SetDialogReason("menu photos missing")

	ctrl.Reject(context.Background(), "c3", "menu photos missing")

	dialog := ctrl.Dialog()
	assert.True(t, dialog.Open, "dialog must stay open so the operator can retry")
	assert.Equal(t, "c3", dialog.ChefID)
	assert.Equal(t, "menu photos missing", dialog.Reason)
	assert.Zero(t, svc.listens, "failed reject must not reload")
	assert.Empty(t, ctrl.ActionLoading())
}

func TestRejectWithEmptyReasonIsAllowed(t *testing.T) {
	var gotReason *string
	svc := &fakeService{
		reject: func(ctx context.Context, chefID, reason string) error {
			gotReason = &reason
			return nil
		},
	}
	ctrl := New(svc, api.FilterAll, nil, nil)

	ctrl.Reject(context.Background(), "c3", "")

	require.NotNil(t, gotReason)
	assert.Empty(t, *gotReason)
}

func TestExtendTrialReloadsOnSuccess(t *testing.T) {
	svc := &fakeService{}
	ctrl := New(svc, api.FilterAll, nil, nil)

	ctrl.ExtendTrial(context.Background(), "c4")

	assert.Equal(t, 1, svc.listens)
	assert.Empty(t, ctrl.ActionLoading())
}

func TestActionGuardVisibleDuringAction(t *testing.T) {
	svc := &fakeService{}
	ctrl := New(svc, api.FilterAll, nil, nil)
	var during string
	svc.extend = func(ctx context.Context, chefID string) error {
		during = ctrl.ActionLoading()
		return errors.New("boom")
	}

	ctrl.ExtendTrial(context.Background(), "c4")

	assert.Equal(t, "c4", during, "guard must be set before the call goes out")
	assert.Empty(t, ctrl.ActionLoading())
}

// End-to-end: real api.Client against a fake server returning the pending
// filter scenario from the admin API contract.
func TestPendingFilterScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/chefs", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		_, _ = io.WriteString(w, `{"success":true,"data":{
			"chefs":[{"id":"c1","kitchenName":"Casa Verde","isVerified":false,"rejectedAt":null,
				"plan":"STARTER","user":{"id":"u1","name":"Vera","createdAt":"2026-02-01T08:00:00Z"}}],
			"stats":{"total":5,"approved":3,"pending":1,"rejected":1}}}`)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "token", 5*time.Second, nil)
	ctrl := New(client, api.FilterPending, nil, nil)

	ctrl.Fetch(context.Background())

	chefs := ctrl.Chefs()
	require.Len(t, chefs, 1)
	assert.Equal(t, "c1", chefs[0].ID)
	assert.Equal(t, api.StatusPending, chefs[0].Status())
	assert.Equal(t, 1, ctrl.Stats().Pending)
	assert.Equal(t, 5, ctrl.Stats().Total)
}
