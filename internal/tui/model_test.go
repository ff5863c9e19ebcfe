package tui

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"twitch-monitor/internal/config"
	"twitch-monitor/internal/twitch"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeService struct {
	authErr   error
	results   []fetchResult
	fetches   int
	lastNames []string
}

type fetchResult struct {
	snapshot twitch.Snapshot
	err      error
}

func (f *fakeService) Authenticate() (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return "token", nil
}

func (f *fakeService) FetchStatuses(names []string) (twitch.Snapshot, error) {
	f.lastNames = names
	result := f.results[min(f.fetches, len(f.results)-1)]
	f.fetches++
	return result.snapshot, result.err
}

func newTestModel(service *fakeService) *Model {
	cfg := config.Config{
		Channels:     []string{"foo", "bar"},
		PollInterval: 3 * time.Second,
		Style:        config.Style{DateFormat: "15:04:05"},
	}
	m := New(cfg, service)
	m.renderer = NewRenderer(PlainStyler{}, cfg.Style.DateFormat)
	m.now = func() time.Time { return testUpdate }
	return &m
}

// run feeds msg to the model and executes the returned command once,
// which for auth and fetch commands yields their result synchronously.
func run(t *testing.T, m *Model, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

var liveSnapshot = twitch.Snapshot{
	{Name: "foo", Live: true, Title: "stream", Game: "Go", ViewerCount: 10},
	{Name: "bar"},
}

func TestModel_StartupToCountdown(t *testing.T) {
	service := &fakeService{results: []fetchResult{{snapshot: liveSnapshot}}}
	m := newTestModel(service)

	if m.State() != StateStarting {
		t.Fatalf("Expected Starting, got %s", m.State())
	}

	authMsg := m.Init()()
	fetchMsg := run(t, m, authMsg)
	if m.State() != StatePolling {
		t.Fatalf("Expected Polling after authentication, got %s", m.State())
	}

	m.Update(fetchMsg)
	if m.State() != StateCountingDown {
		t.Fatalf("Expected CountingDown after a successful fetch, got %s", m.State())
	}
	if m.remaining != 3 {
		t.Errorf("Expected 3 seconds remaining, got %d", m.remaining)
	}
	if !m.lastUpdate.Equal(testUpdate) {
		t.Errorf("Expected last update to be captured, got %s", m.lastUpdate)
	}
	if strings.Join(service.lastNames, ",") != "foo,bar" {
		t.Errorf("Expected every configured name to be fetched, got %v", service.lastNames)
	}
}

func TestModel_AuthFailureStops(t *testing.T) {
	authErr := &twitch.AuthError{StatusCode: http.StatusBadRequest, Message: "invalid client"}
	m := newTestModel(&fakeService{authErr: authErr})

	msg := run(t, m, m.Init()())

	if m.State() != StateStopped {
		t.Fatalf("Expected Stopped, got %s", m.State())
	}
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected quit, got %T", msg)
	}
	if !errors.Is(m.Err(), authErr) {
		t.Errorf("Expected auth error to be reported, got %v", m.Err())
	}
}

func TestModel_CountdownReachesZero(t *testing.T) {
	service := &fakeService{results: []fetchResult{{snapshot: liveSnapshot}}}
	m := newTestModel(service)
	m.Update(run(t, m, m.Init()()))

	for i := 0; i < 2; i++ {
		m.Update(countdownMsg{seq: m.seq})
		if m.State() != StateCountingDown {
			t.Fatalf("Tick %d: expected CountingDown, got %s", i, m.State())
		}
	}
	if m.remaining != 1 {
		t.Fatalf("Expected 1 second remaining, got %d", m.remaining)
	}

	msg := run(t, m, countdownMsg{seq: m.seq})
	if m.State() != StatePolling {
		t.Fatalf("Expected Polling at zero, got %s", m.State())
	}
	if _, ok := msg.(fetchResultMsg); !ok {
		t.Fatalf("Expected a fetch to be issued, got %T", msg)
	}
	if service.fetches != 2 {
		t.Errorf("Expected 2 fetches, got %d", service.fetches)
	}
}

func TestModel_FetchErrorBacksOffThenPolls(t *testing.T) {
	service := &fakeService{results: []fetchResult{
		{err: &twitch.FetchError{StatusCode: http.StatusInternalServerError, Message: "oops"}},
		{snapshot: liveSnapshot},
	}}
	m := newTestModel(service)

	fetchMsg := run(t, m, m.Init()())
	_, cmd := m.Update(fetchMsg)

	if m.State() != StateErrorBackoff {
		t.Fatalf("Expected ErrorBackoff, got %s", m.State())
	}
	if cmd == nil {
		t.Fatalf("Expected a backoff timer")
	}
	if m.Err() != nil {
		t.Errorf("Expected a fetch error not to be fatal, got %v", m.Err())
	}

	// A countdown tick must not advance the backoff.
	m.Update(countdownMsg{seq: m.seq})
	if m.State() != StateErrorBackoff {
		t.Fatalf("Expected ErrorBackoff to hold, got %s", m.State())
	}

	msg := run(t, m, backoffDoneMsg{seq: m.seq})
	if m.State() != StatePolling {
		t.Fatalf("Expected Polling after backoff, got %s", m.State())
	}

	m.Update(msg)
	if m.State() != StateCountingDown {
		t.Fatalf("Expected recovery into CountingDown, got %s", m.State())
	}
	if m.lastErr != nil {
		t.Errorf("Expected error to be cleared, got %v", m.lastErr)
	}
}

func TestModel_InterruptDuringCountdown(t *testing.T) {
	service := &fakeService{results: []fetchResult{{snapshot: liveSnapshot}}}
	m := newTestModel(service)
	m.Update(run(t, m, m.Init()()))
	staleSeq := m.seq

	msg := run(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if m.State() != StateStopped {
		t.Fatalf("Expected Stopped, got %s", m.State())
	}
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected quit, got %T", msg)
	}
	if m.Err() != nil {
		t.Errorf("Expected a clean stop, got %v", m.Err())
	}

	_, cmd := m.Update(countdownMsg{seq: staleSeq})
	if cmd != nil || m.State() != StateStopped {
		t.Errorf("Expected pending ticks to be ignored after stop")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(&fakeService{results: []fetchResult{{snapshot: liveSnapshot}}})

	msg := run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if m.State() != StateStopped {
		t.Fatalf("Expected Stopped, got %s", m.State())
	}
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected quit, got %T", msg)
	}
}

func TestModel_StaleTickIgnored(t *testing.T) {
	service := &fakeService{results: []fetchResult{{snapshot: liveSnapshot}}}
	m := newTestModel(service)
	m.Update(run(t, m, m.Init()()))

	m.Update(countdownMsg{seq: m.seq - 1})
	if m.remaining != 3 {
		t.Errorf("Expected stale tick to be ignored, remaining = %d", m.remaining)
	}
}

func TestModel_PollKeySkipsCountdown(t *testing.T) {
	service := &fakeService{results: []fetchResult{{snapshot: liveSnapshot}}}
	m := newTestModel(service)
	m.Update(run(t, m, m.Init()()))

	msg := run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.State() != StatePolling {
		t.Fatalf("Expected Polling, got %s", m.State())
	}
	if _, ok := msg.(fetchResultMsg); !ok {
		t.Errorf("Expected a fetch, got %T", msg)
	}
}

func TestModel_View(t *testing.T) {
	service := &fakeService{results: []fetchResult{{snapshot: liveSnapshot}}}
	m := newTestModel(service)

	if !strings.Contains(m.View(), "Initializing") {
		t.Errorf("Expected placeholder before the first resize, got %q", m.View())
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	if !strings.Contains(m.View(), "Monitoring 2 streamers") {
		t.Errorf("Expected starting screen, got:\n%s", m.View())
	}

	m.Update(run(t, m, m.Init()()))
	m.Update(countdownMsg{seq: m.seq})

	view := m.View()
	for _, want := range []string{"┌─ FOO", "Status: 1 LIVE / 1 OFFLINE / 2 Total", "Next check in 2 seconds..."} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view:\n%s", want, view)
		}
	}
}

func TestModel_ViewDuringBackoff(t *testing.T) {
	service := &fakeService{results: []fetchResult{{err: &twitch.FetchError{StatusCode: http.StatusUnauthorized}}}}
	m := newTestModel(service)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(run(t, m, m.Init()()))

	view := m.View()
	if !strings.Contains(view, "Error checking status") || !strings.Contains(view, "Retrying in 3 seconds...") {
		t.Errorf("Expected error screen, got:\n%s", view)
	}
}

func TestState_String(t *testing.T) {
	if StateErrorBackoff.String() != "ErrorBackoff" {
		t.Errorf("Unexpected name %s", StateErrorBackoff)
	}
	if State(42).String() != "Unknown" {
		t.Errorf("Unexpected name %s", State(42))
	}
}
