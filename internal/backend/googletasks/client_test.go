package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"pmctl/internal/service"
)

// fakeTasksAPI is a minimal in-memory Google Tasks endpoint.
type fakeTasksAPI struct {
	mu    sync.Mutex
	lists []*tasks.TaskList
	items map[string][]*tasks.Task
}

func (f *fakeTasksAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/tasks/v1/")

	switch {
	case path == "users/@me/lists" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(tasks.TaskLists{Items: f.lists})

	case path == "users/@me/lists" && r.Method == http.MethodPost:
		var list tasks.TaskList
		json.NewDecoder(r.Body).Decode(&list)
		list.Id = "list-" + list.Title
		f.lists = append(f.lists, &list)
		json.NewEncoder(w).Encode(list)

	case strings.HasPrefix(path, "lists/") && strings.HasSuffix(path, "/tasks"):
		listID := strings.TrimSuffix(strings.TrimPrefix(path, "lists/"), "/tasks")
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(tasks.Tasks{Items: f.items[listID]})
			return
		}
		var task tasks.Task
		json.NewDecoder(r.Body).Decode(&task)
		task.Id = "task-" + task.Title
		f.items[listID] = append(f.items[listID], &task)
		json.NewEncoder(w).Encode(task)

	default:
		http.NotFound(w, r)
	}
}

func newTestExporter(t *testing.T, api http.Handler) *Exporter {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	e, err := NewWithHTTPClient(context.Background(), srv.Client(), rate.NewLimiter(rate.Inf, 1), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return e
}

var projectTasks = []service.TaskListItem{
	{ID: 1, Title: "Design schema", Status: service.StatusInProgress, Priority: service.PriorityHigh, DueDate: "2025-03-01"},
	{ID: 2, Title: "Write docs", Status: service.StatusCompleted, Priority: service.PriorityLow},
	{ID: 3, Title: "Review PR", Status: service.StatusTodo, Priority: service.PriorityMedium, AssigneeName: "Ada Lovelace"},
	{ID: 4, Title: "Old spike", Status: service.StatusCancelled},
}

func TestExport_CreatesMissingList(t *testing.T) {
	api := &fakeTasksAPI{items: map[string][]*tasks.Task{}}
	e := newTestExporter(t, api)

	res, err := e.Export(context.Background(), "Apollo", projectTasks)
	require.NoError(t, err)

	assert.True(t, res.CreatedList)
	assert.Equal(t, "list-Apollo", res.ListID)
	assert.Equal(t, 2, res.Exported)
	assert.Equal(t, 2, res.Skipped)

	got := api.items["list-Apollo"]
	require.Len(t, got, 2)
	assert.Equal(t, "Design schema", got[0].Title)
	assert.Equal(t, "2025-03-01T00:00:00Z", got[0].Due)
	assert.True(t, strings.HasPrefix(got[0].Notes, "pmctl:task:1\n"))
	assert.Equal(t, "Review PR", got[1].Title)
	assert.Contains(t, got[1].Notes, "assignee: Ada Lovelace")
}

func TestExport_ReusesListAndSkipsExported(t *testing.T) {
	api := &fakeTasksAPI{
		lists: []*tasks.TaskList{{Id: "L9", Title: "apollo "}},
		items: map[string][]*tasks.Task{
			"L9": {{Id: "x", Title: "Design schema", Notes: "pmctl:task:1\nin_progress · high priority"}},
		},
	}
	e := newTestExporter(t, api)

	res, err := e.Export(context.Background(), "Apollo", projectTasks)
	require.NoError(t, err)

	assert.False(t, res.CreatedList)
	assert.Equal(t, "L9", res.ListID)
	assert.Equal(t, 1, res.Exported)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, api.items["L9"], 2)
	assert.Len(t, api.lists, 1)
}

func TestExport_AuthFailure(t *testing.T) {
	e := newTestExporter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}))

	_, err := e.Export(context.Background(), "Apollo", projectTasks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pmctl login --google")
}

func TestDueDate(t *testing.T) {
	assert.Equal(t, "", dueDate(""))
	assert.Equal(t, "", dueDate("next week"))
	assert.Equal(t, "2025-03-01T00:00:00Z", dueDate("2025-03-01"))
	assert.Equal(t, "2025-03-01T08:00:00Z", dueDate("2025-03-01T10:00:00+02:00"))
}

func TestWrapError(t *testing.T) {
	assert.EqualError(t, wrapError(&googleapi.Error{Code: 404}), "not found")
	assert.EqualError(t, wrapError(&googleapi.Error{Code: 403}), "google token expired or revoked (run: pmctl login --google)")
	assert.EqualError(t, wrapError(context.DeadlineExceeded), "request timed out")

	other := errors.New("boom")
	assert.Equal(t, other, wrapError(other))
}
