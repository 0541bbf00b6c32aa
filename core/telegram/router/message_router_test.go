package router

import (
	"os"
	"testing"

	"fitbot/core/logger"
	tg "fitbot/core/telegram"
	"fitbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

// fakeCtx implements the slice of tele.Context the text router touches.
type fakeCtx struct {
	tele.Context
	text   string
	sender *tele.User
	data   map[string]any
}

func newFakeCtx(userID int64, text string) *fakeCtx {
	return &fakeCtx{text: text, sender: &tele.User{ID: userID}, data: make(map[string]any)}
}

func (c *fakeCtx) Text() string { return c.text }
func (c *fakeCtx) Sender() *tele.User { return c.sender }
func (c *fakeCtx) Chat() *tele.Chat { return nil }
func (c *fakeCtx) Update() tele.Update { return tele.Update{ID: 7} }
func (c *fakeCtx) Get(key string) any { return c.data[key] }
func (c *fakeCtx) Set(key string, val any) { c.data[key] = val }

type stubDialog struct {
	active bool
	calls  int
}

func (d *stubDialog) InProgress(int64) bool { return d.active }
func (d *stubDialog) ManagerHandler(tele.Context) error { d.calls++; return nil }

type stubPending struct {
	has   bool
	calls int
}

func (p *stubPending) HasPending(int64) bool { return p.has }
func (p *stubPending) ReplyHandler(tele.Context) error { p.calls++; return nil }

type routerFixture struct {
	dialog       *stubDialog
	pending      *stubPending
	commandCalls int
	handler      tele.HandlerFunc
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{dialog: &stubDialog{}, pending: &stubPending{}}

	reg := tg.NewRegistry()
	reg.RegisterCommand("/log_water", commands.Command{
		Handler:     func(tele.Context) error { f.commandCalls++; return nil },
		Description: "Log drunk water in ml",
	})

	routes := TextRoutes(f.dialog, f.pending, reg, TextOptions{})
	if len(routes) != 1 {
		t.Fatalf("TextRoutes returned %d routes, want 1", len(routes))
	}
	f.handler = routes[0].Handler
	return f
}

func (f *routerFixture) dispatch(t *testing.T, text string) {
	t.Helper()
	if err := f.handler(newFakeCtx(42, text)); err != nil {
		t.Fatalf("dispatch(%q): %v", text, err)
	}
}

func TestActiveDialogueWinsOverCommandMatch(t *testing.T) {
	f := newRouterFixture(t)
	f.dialog.active = true
	f.pending.has = true

	f.dispatch(t, "/log_water 300")

	if f.dialog.calls != 1 {
		t.Fatalf("dialog calls = %d, want 1", f.dialog.calls)
	}
	if f.commandCalls != 0 || f.pending.calls != 0 {
		t.Fatalf("command calls = %d, pending calls = %d, an open dialogue must consume the message",
			f.commandCalls, f.pending.calls)
	}
}

func TestBareIntegerGoesToPendingReply(t *testing.T) {
	f := newRouterFixture(t)
	f.pending.has = true

	f.dispatch(t, " 150 ")

	if f.pending.calls != 1 {
		t.Fatalf("pending calls = %d, want 1", f.pending.calls)
	}
	if f.commandCalls != 0 || f.dialog.calls != 0 {
		t.Fatalf("command calls = %d, dialog calls = %d, want 0", f.commandCalls, f.dialog.calls)
	}
}

func TestPendingReplySkippedForNonInteger(t *testing.T) {
	f := newRouterFixture(t)
	f.pending.has = true

	f.dispatch(t, "/log_water 300")

	if f.pending.calls != 0 {
		t.Fatalf("pending calls = %d, a command must not be eaten as a gram answer", f.pending.calls)
	}
	if f.commandCalls != 1 {
		t.Fatalf("command calls = %d, want 1", f.commandCalls)
	}
}

func TestCommandLookupByFirstToken(t *testing.T) {
	f := newRouterFixture(t)

	f.dispatch(t, "/log_water 300")

	if f.commandCalls != 1 {
		t.Fatalf("command calls = %d, want 1 despite trailing arguments", f.commandCalls)
	}
}

func TestUnmatchedTextIsIgnored(t *testing.T) {
	f := newRouterFixture(t)
	f.pending.has = true

	f.dispatch(t, "just chatting")

	if f.dialog.calls != 0 || f.pending.calls != 0 || f.commandCalls != 0 {
		t.Fatalf("dialog/pending/command calls = %d/%d/%d, want all 0",
			f.dialog.calls, f.pending.calls, f.commandCalls)
	}
}
