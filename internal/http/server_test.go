package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fairway/internal/api"
	"fairway/internal/services"
	"fairway/internal/store"
)

// fakeRoundAPI backs the sync controller with an in-memory scorecard list.
type fakeRoundAPI struct {
	cards  []api.ScorecardPayload
	nextID int
	fail   error
}

func (f *fakeRoundAPI) List(context.Context) ([]api.ScorecardPayload, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]api.ScorecardPayload(nil), f.cards...), nil
}

func (f *fakeRoundAPI) Create(_ context.Context, p api.ScorecardPayload) (api.ScorecardPayload, error) {
	if f.fail != nil {
		return api.ScorecardPayload{}, f.fail
	}
	f.nextID++
	p.ID = fmt.Sprintf("sc-%d", f.nextID)
	f.cards = append(f.cards, p)
	return p, nil
}

func (f *fakeRoundAPI) Update(_ context.Context, id string, p api.ScorecardPayload) (api.ScorecardPayload, error) {
	if f.fail != nil {
		return api.ScorecardPayload{}, f.fail
	}
	for i := range f.cards {
		if f.cards[i].ID == id {
			p.ID = id
			f.cards[i] = p
			return p, nil
		}
	}
	return api.ScorecardPayload{}, api.ErrNotFound
}

func (f *fakeRoundAPI) Delete(_ context.Context, id string) error {
	if f.fail != nil {
		return f.fail
	}
	for i := range f.cards {
		if f.cards[i].ID == id {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (f *fakeRoundAPI) Stats(context.Context) (api.StatsPayload, error) {
	return api.StatsPayload{TotalRounds: len(f.cards)}, nil
}

func payload(id, course, date string, rel int) api.ScorecardPayload {
	return api.ScorecardPayload{
		ID:         id,
		CourseName: course,
		DatePlayed: date,
		Holes:      []api.HolePayload{{Number: 1, Par: 4, Score: 4 + rel}},
	}
}

func testDashboard(t *testing.T, remote *fakeRoundAPI) (*Server, *store.RecordStore) {
	t.Helper()
	recordStore := store.New()
	controller := services.NewSyncController(remote, recordStore)
	if remote.fail == nil {
		if err := controller.Refresh(context.Background()); err != nil {
			t.Fatalf("initial refresh: %v", err)
		}
	}
	srv := NewServer(":0", controller, recordStore)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, recordStore
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexListsCourses(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
		payload("b", "Pebble Beach", "2025-03-01", -1),
	}})

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, course := range []string{"Augusta National", "Pebble Beach"} {
		if !strings.Contains(body, course) {
			t.Fatalf("index missing course %q", course)
		}
	}
}

func TestScorecardListFiltersByCourse(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
		payload("b", "Pebble Beach", "2025-03-01", -1),
	}})

	rec := get(t, srv, "/ui/scorecards?course=Pebble+Beach")
	body := rec.Body.String()
	if !strings.Contains(body, "Pebble Beach") || strings.Contains(body, "Augusta") {
		t.Fatalf("filter not applied:\n%s", body)
	}
}

func TestScorecardListEmptyState(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{})

	rec := get(t, srv, "/ui/scorecards")
	if !strings.Contains(rec.Body.String(), "No rounds match") {
		t.Fatalf("missing empty state:\n%s", rec.Body)
	}
}

func TestStatsPanelCoversFullSet(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
		payload("b", "Pebble Beach", "2025-03-01", -1),
	}})

	rec := get(t, srv, "/ui/stats")
	if !strings.Contains(rec.Body.String(), ">2<") {
		t.Fatalf("stats missing round count:\n%s", rec.Body)
	}

	// Filter params narrow the card grid only; the roll-up still counts
	// every recorded round.
	rec = get(t, srv, "/ui/stats?course=Pebble+Beach&range=last-month")
	body := rec.Body.String()
	if !strings.Contains(body, ">2<") {
		t.Fatalf("stats changed under filter params:\n%s", body)
	}
	if !strings.Contains(body, "-1") {
		t.Fatalf("best round missing:\n%s", body)
	}
}

func TestRoundFormCreateModeHasDefaults(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{})

	rec := get(t, srv, "/ui/round-form?mode=create")
	body := rec.Body.String()
	if !strings.Contains(body, "New Round") {
		t.Fatalf("create form missing title:\n%s", body)
	}
	// Hole 3 defaults to par 3, hole 5 to par 5.
	if !strings.Contains(body, `name="par_3" value="3"`) || !strings.Contains(body, `name="par_5" value="5"`) {
		t.Fatalf("default pars missing:\n%s", body)
	}
}

func TestRoundFormViewModeReadOnly(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
	}})

	rec := get(t, srv, "/ui/round-form?mode=view&id=a")
	body := rec.Body.String()
	if !strings.Contains(body, "Round Details") {
		t.Fatalf("view form missing title:\n%s", body)
	}
	if strings.Contains(body, "Save Round") {
		t.Fatalf("view form should not have a save button:\n%s", body)
	}
}

func TestRoundFormUnknownID(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{})

	rec := get(t, srv, "/ui/round-form?mode=edit&id=nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateRoundStoresAndTriggers(t *testing.T) {
	remote := &fakeRoundAPI{}
	srv, recordStore := testDashboard(t, remote)

	req := formRequest(t, fullRoundForm())
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if recordStore.Len() != 1 {
		t.Fatalf("store has %d records, want 1", recordStore.Len())
	}

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger not JSON: %v", err)
	}
	if _, ok := triggers[TriggerRoundCreated]; !ok {
		t.Fatalf("missing %s trigger: %v", TriggerRoundCreated, triggers)
	}
	if _, ok := triggers["showNotification"]; !ok {
		t.Fatalf("missing notification: %v", triggers)
	}
}

func TestDeleteRoundDecreasesCount(t *testing.T) {
	remote := &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
		payload("b", "Pebble Beach", "2025-03-01", -1),
	}}
	srv, recordStore := testDashboard(t, remote)

	before := recordStore.Len()
	req := httptest.NewRequest(http.MethodDelete, "/rounds/a", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if recordStore.Len() != before-1 {
		t.Fatalf("store has %d records, want %d", recordStore.Len(), before-1)
	}
	if _, ok := recordStore.Get("a"); ok {
		t.Fatalf("deleted round still in store")
	}
}

func TestDeleteFailureNamesOperation(t *testing.T) {
	remote := &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
	}}
	srv, recordStore := testDashboard(t, remote)
	remote.fail = &api.OpError{Op: api.OpDelete, Status: http.StatusBadGateway, Err: api.ErrNotFound}

	req := httptest.NewRequest(http.MethodDelete, "/rounds/a", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	// The failed operation is named in the toast, and the store keeps the round.
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "delete") {
		t.Fatalf("error toast does not name the operation: %s", rec.Header().Get("HX-Trigger"))
	}
	if recordStore.Len() != 1 {
		t.Fatalf("store mutated despite remote failure")
	}
}

func TestTrendChartData(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("b", "Pebble Beach", "2025-03-01", -1),
		payload("a", "Augusta National", "2025-02-15", 1),
	}})

	rec := get(t, srv, "/chart-data/trend")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var data trendChartData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Oldest round first on the trend line.
	if len(data.Data) != 2 || data.Data[0] != 1 || data.Data[1] != -1 {
		t.Fatalf("trend data = %+v", data)
	}
	if data.Courses[0] != "Augusta National" {
		t.Fatalf("trend courses = %v", data.Courses)
	}

	// Charts cover the full set regardless of filter params.
	rec = get(t, srv, "/chart-data/trend?course=Pebble+Beach")
	var filtered trendChartData
	if err := json.Unmarshal(rec.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(filtered.Data) != 2 {
		t.Fatalf("filter params narrowed the trend chart: %+v", filtered)
	}
}

func TestCoursesChartData(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("a", "Augusta National", "2025-02-15", 1),
		payload("b", "Pebble Beach", "2025-03-01", -1),
		payload("c", "Pebble Beach", "2025-03-08", 0),
	}})

	rec := get(t, srv, "/chart-data/courses")
	var data coursesChartData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Labels) != 2 || len(data.Colors) != 2 {
		t.Fatalf("courses data = %+v", data)
	}
	// Colors come from the green palette.
	if data.Colors[0] != "hsl(120, 60%, 40%)" {
		t.Fatalf("first slice color = %s", data.Colors[0])
	}
}

func TestChartCachePurgedOnMutation(t *testing.T) {
	remote := &fakeRoundAPI{}
	srv, _ := testDashboard(t, remote)

	get(t, srv, "/chart-data/trend")
	if srv.chartCache.Size() == 0 {
		t.Fatalf("chart data not cached")
	}

	req := formRequest(t, fullRoundForm())
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d", rec.Code)
	}

	if srv.chartCache.Size() != 0 {
		t.Fatalf("chart cache not purged after mutation")
	}
}

func TestHealthAndReady(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{})

	if rec := get(t, srv, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	if rec := get(t, srv, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{})

	rec := get(t, srv, "/")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("missing X-Frame-Options")
	}
}

func TestFilterWindowAppliesToList(t *testing.T) {
	srv, _ := testDashboard(t, &fakeRoundAPI{cards: []api.ScorecardPayload{
		payload("old", "Augusta National", "2020-01-01", 1),
	}})

	rec := get(t, srv, "/ui/scorecards?range=last-month")
	if !strings.Contains(rec.Body.String(), "No rounds match") {
		t.Fatalf("old round leaked into last-month window:\n%s", rec.Body)
	}
}
