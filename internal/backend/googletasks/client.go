// Package googletasks mirrors project tasks into Google Tasks.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"pmctl/internal/config"
	"pmctl/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	// WritesPerSecond paces inserts to stay under the per-user quota.
	WritesPerSecond = 5

	// notesPrefix marks exported tasks so a second export skips them.
	notesPrefix = "pmctl:task:"
)

// Exporter writes tasks into a Google Tasks list.
type Exporter struct {
	svc     *tasks.Service
	limiter *rate.Limiter
}

// OAuthConfig reads google_oauth_client.json from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.GoogleClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.GoogleClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.GoogleClientFile, err)
	}
	return oauthConfig, nil
}

// New creates an exporter from the stored Google credentials.
// Requires google_oauth_client.json and google_token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Exporter, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.GoogleTokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.GoogleTokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.GoogleTokenFile, err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	return NewWithHTTPClient(ctx, httpClient, rate.NewLimiter(WritesPerSecond, 1))
}

// NewWithHTTPClient creates an exporter with a custom HTTP client and limiter.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, limiter *rate.Limiter, opts ...option.ClientOption) (*Exporter, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Exporter{svc: svc, limiter: limiter}, nil
}

// Result summarizes an export.
type Result struct {
	ListID      string
	ListTitle   string
	CreatedList bool
	Exported    int
	Skipped     int
}

// Export copies the open items into the list titled listTitle, creating it if
// needed. Completed and cancelled items are skipped, as are items a previous
// export already wrote.
func (e *Exporter) Export(ctx context.Context, listTitle string, items []service.TaskListItem) (Result, error) {
	res := Result{ListTitle: listTitle}

	listID, created, err := e.ensureList(ctx, listTitle)
	if err != nil {
		return res, err
	}
	res.ListID, res.CreatedList = listID, created

	existing := map[string]bool{}
	if !created {
		if existing, err = e.exportedIDs(ctx, listID); err != nil {
			return res, err
		}
	}

	for _, item := range items {
		if !isOpen(item.Status) || existing[notesPrefix+fmt.Sprint(item.ID)] {
			res.Skipped++
			continue
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return res, err
		}
		if err := e.insert(ctx, listID, item); err != nil {
			return res, err
		}
		res.Exported++
	}
	return res, nil
}

func (e *Exporter) ensureList(ctx context.Context, title string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var id string
	want := strings.ToLower(strings.TrimSpace(title))
	err := e.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if id == "" && strings.ToLower(strings.TrimSpace(list.Title)) == want {
				id = list.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", false, wrapError(err)
	}
	if id != "" {
		return id, false, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return "", false, err
	}
	list, err := e.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", false, wrapError(err)
	}
	return list.Id, true, nil
}

func (e *Exporter) exportedIDs(ctx context.Context, listID string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	seen := map[string]bool{}
	err := e.svc.Tasks.List(listID).
		MaxResults(100).
		ShowCompleted(true).
		ShowHidden(true).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, task := range resp.Items {
				if line, _, _ := strings.Cut(task.Notes, "\n"); strings.HasPrefix(line, notesPrefix) {
					seen[line] = true
				}
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return seen, nil
}

func (e *Exporter) insert(ctx context.Context, listID string, item service.TaskListItem) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	task := &tasks.Task{
		Title: item.Title,
		Notes: fmt.Sprintf("%s%d\n%s · %s priority", notesPrefix, item.ID, item.Status, item.Priority),
		Due:   dueDate(item.DueDate),
	}
	if item.AssigneeName != "" {
		task.Notes += "\nassignee: " + item.AssigneeName
	}
	if _, err := e.svc.Tasks.Insert(listID, task).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

func isOpen(status string) bool {
	return status != service.StatusCompleted && status != service.StatusCancelled
}

// dueDate converts a backend date to the RFC 3339 timestamp Google Tasks expects.
func dueDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Format(time.RFC3339)
	}
	return ""
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.New("google token expired or revoked (run: pmctl login --google)")
		case http.StatusNotFound:
			return errors.New("not found")
		}
	}
	return err
}
