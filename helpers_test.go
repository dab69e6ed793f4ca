package smsactivate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// fakeService is an httptest server that answers handler_api.php actions
// from scripted bodies. Each action replays its bodies in order and then
// repeats the last one.
type fakeService struct {
	t      *testing.T
	server *httptest.Server

	mu        sync.Mutex
	bodies    map[string][]string
	status    map[string]int
	calls     map[string]int
	lastQuery map[string]url.Values
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{
		t:         t,
		bodies:    make(map[string][]string),
		status:    make(map[string]int),
		calls:     make(map[string]int),
		lastQuery: make(map[string]url.Values),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	action := query.Get("action")

	f.mu.Lock()
	n := f.calls[action]
	f.calls[action] = n + 1
	f.lastQuery[action] = query
	bodies := f.bodies[action]
	status := f.status[action]
	f.mu.Unlock()

	if query.Get("api_key") != "test-key" {
		w.Write([]byte(`{"error":"BAD_KEY"}`))
		return
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if len(bodies) == 0 {
		f.t.Errorf("unexpected action %q", action)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if n >= len(bodies) {
		n = len(bodies) - 1
	}
	w.Write([]byte(bodies[n]))
}

// on scripts the responses for action.
func (f *fakeService) on(action string, bodies ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[action] = bodies
}

// failWith makes action answer with an HTTP status instead of a body.
func (f *fakeService) failWith(action string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[action] = status
}

func (f *fakeService) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[action]
}

func (f *fakeService) query(action string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery[action]
}

func (f *fakeService) client(opts ...Option) *Client {
	f.t.Helper()
	opts = append([]Option{WithBaseURL(f.server.URL)}, opts...)
	c, err := New("test-key", opts...)
	if err != nil {
		f.t.Fatalf("New() error = %v", err)
	}
	return c
}

// fakeClock records requested pauses instead of sleeping.
type fakeClock struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (c *fakeClock) wait(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	c.mu.Unlock()
	return ctx.Err()
}

func (c *fakeClock) total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum time.Duration
	for _, d := range c.waits {
		sum += d
	}
	return sum
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waits)
}

const (
	jsonBuyOK     = `{"status":"OK","response":{"id":1001,"email":"box@gmail.com"}}`
	jsonReorderOK = `{"status":"OK","response":{"id":"1002","email":"box2@gmail.com"}}`
	jsonWaiting   = `{"status":"OK","response":{}}`
	jsonWaitLink  = `{"error":"WAIT_LINK"}`
	jsonCancelOK  = `{"status":"OK","response":true}`
)

func jsonMessage(msg string) string {
	return `{"status":"OK","response":{"full_message":"` + msg + `"}}`
}

// buy purchases an activation from f using the default JSON protocol.
func buy(t *testing.T, f *fakeService, opts ...Option) *EmailActivation {
	t.Helper()
	f.on("buyMailActivation", jsonBuyOK)
	a, err := f.client(opts...).BuyEmailActivation(context.Background(), "instagram.com", NewEmailDomain("gmail.com", DomainPopular))
	if err != nil {
		t.Fatalf("BuyEmailActivation() error = %v", err)
	}
	return a
}
