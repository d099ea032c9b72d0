package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todo-web/internal/httpapi"
	"todo-web/internal/observability/jsonlog"
	"todo-web/internal/store"
	"todo-web/internal/task"
)

func newTestServer() (*httptest.Server, *store.TaskStore) {
	st := store.NewTaskStore()
	srv := httpapi.NewServer(task.NewService(st), jsonlog.Discard(), httpapi.Options{})
	return httptest.NewServer(srv), st
}

// noRedirectClient returns the 302 itself instead of following it.
func noRedirectClient(ts *httptest.Server) *http.Client {
	c := *ts.Client()
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}

func do(t *testing.T, client *http.Client, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(data)
}

func get(t *testing.T, client *http.Client, u string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return do(t, client, req)
}

func add(t *testing.T, client *http.Client, base, title, description string) *http.Response {
	t.Helper()
	form := url.Values{"title": {title}}
	if description != "" {
		form.Set("description", description)
	}
	req, err := http.NewRequest(http.MethodPost, base+"/add", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := do(t, client, req)
	return resp
}

func expectRedirect(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status=%d want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("location=%q", loc)
	}
}

func TestEndToEnd_BuyMilkWalkDog(t *testing.T) {
	ts, st := newTestServer()
	defer ts.Close()
	client := noRedirectClient(ts)

	expectRedirect(t, add(t, client, ts.URL, "Buy milk", ""))
	expectRedirect(t, add(t, client, ts.URL, "Walk dog", ""))

	resp, _ := get(t, client, ts.URL+"/complete/1")
	expectRedirect(t, resp)

	tasks := st.List()
	if len(tasks) != 2 {
		t.Fatalf("len=%d want 2", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || !tasks[0].Completed {
		t.Fatalf("first=%+v", tasks[0])
	}
	if tasks[1].Title != "Walk dog" || tasks[1].Completed {
		t.Fatalf("second=%+v", tasks[1])
	}

	// following the redirect lands on the rendered listing
	resp, body := get(t, ts.Client(), ts.URL+"/complete/1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if strings.Index(body, "Buy milk") > strings.Index(body, "Walk dog") {
		t.Fatalf("listing out of order:\n%s", body)
	}
	if !strings.Contains(body, `class="task done" data-id="1"`) || !strings.Contains(body, `class="task" data-id="2"`) {
		t.Fatalf("completion markers missing:\n%s", body)
	}
}

func TestEndToEnd_IDsNotReused(t *testing.T) {
	ts, st := newTestServer()
	defer ts.Close()
	client := noRedirectClient(ts)

	add(t, client, ts.URL, "one", "")
	add(t, client, ts.URL, "two", "")
	add(t, client, ts.URL, "three", "")
	resp, _ := get(t, client, ts.URL+"/delete/2")
	expectRedirect(t, resp)
	add(t, client, ts.URL, "four", "")

	seen := map[int64]bool{}
	for _, tk := range st.List() {
		if seen[tk.ID] {
			t.Fatalf("duplicate id %d: %+v", tk.ID, st.List())
		}
		seen[tk.ID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("len=%d want 3", len(seen))
	}
}

func TestEndToEnd_NoopsStillRedirect(t *testing.T) {
	ts, st := newTestServer()
	defer ts.Close()
	client := noRedirectClient(ts)

	expectRedirect(t, add(t, client, ts.URL, "", "no title"))

	resp, _ := get(t, client, ts.URL+"/complete/5")
	expectRedirect(t, resp)
	resp, _ = get(t, client, ts.URL+"/delete/5")
	expectRedirect(t, resp)

	if st.Len() != 0 {
		t.Fatalf("store grew to %d", st.Len())
	}

	resp, _ = get(t, client, ts.URL+"/complete/five")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want 404", resp.StatusCode)
	}
}
