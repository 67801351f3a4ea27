package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"empedi/internal/domain/job"

	"github.com/google/uuid"
)

var quiet = log.New(io.Discard, "", 0)

func testClient(f Filter) *Client {
	return &Client{send: make(chan []byte, sendBuffer), filter: f}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case b := <-c.send:
		return b
	case <-time.After(2 * time.Second):
		t.Fatalf("no message delivered")
		return nil
	}
}

func TestHub_BroadcastRespectsFilters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(quiet)
	go hub.Run(ctx)

	goSkill := uuid.New()
	all := testClient(Filter{})
	interns := testClient(Filter{Kind: job.KindInternship})
	gophers := testClient(Filter{SkillIDs: []uuid.UUID{goSkill}})
	for _, c := range []*Client{all, interns, gophers} {
		hub.Register(c)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	hub.Broadcast(Message{Kind: job.KindJob, SkillIDs: []uuid.UUID{goSkill}, Payload: []byte("a")})
	hub.Broadcast(Message{Kind: job.KindInternship, Payload: []byte("b")})

	if got := string(recv(t, all)); got != "a" {
		t.Fatalf("expected a, got %q", got)
	}
	if got := string(recv(t, all)); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := string(recv(t, interns)); got != "b" {
		t.Fatalf("internship client must only see b, got %q", got)
	}
	if got := string(recv(t, gophers)); got != "a" {
		t.Fatalf("skill client must only see a, got %q", got)
	}
	select {
	case b := <-gophers.send:
		t.Fatalf("unexpected extra message %q", b)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(quiet)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := testClient(Filter{})
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	cancel()
	<-done

	if _, ok := <-c.send; ok {
		t.Fatalf("send channel must be closed on shutdown")
	}
}

func TestParseFilter(t *testing.T) {
	id := uuid.New()
	f, err := parseFilter("internship", " "+id.String()+", ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.Kind != job.KindInternship || len(f.SkillIDs) != 1 || f.SkillIDs[0] != id {
		t.Fatalf("unexpected filter %+v", f)
	}
	if _, err := parseFilter("gig", ""); !errors.Is(err, errInvalidKind) {
		t.Fatalf("expected errInvalidKind, got %v", err)
	}
	if _, err := parseFilter("", "nope"); !errors.Is(err, errInvalidSkillID) {
		t.Fatalf("expected errInvalidSkillID, got %v", err)
	}
}

var errDown = errors.New("down")

type downPublisher struct{}

func (downPublisher) Publish(context.Context, string, []byte) error { return errDown }

func TestLocalFallbackPublisher_DeliversLocally(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(quiet)
	go hub.Run(ctx)
	c := testClient(Filter{Kind: job.KindJob})
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	relay := NewRelay(hub, nil, quiet)
	pub := NewLocalFallbackPublisher(downPublisher{}, relay, errDown)

	payload, _ := json.Marshal(job.Event{Type: job.EventPosted, Kind: job.KindJob, JobID: uuid.New()})
	if err := pub.Publish(ctx, job.EventsChannel, payload); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := recv(t, c); string(got) != string(payload) {
		t.Fatalf("expected payload relayed locally, got %q", got)
	}
}

func TestHub_RegisterAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(quiet)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// More clients than the queue holds; each call must return.
	clients := make([]*Client, 0, 200)
	returned := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			c := testClient(Filter{})
			clients = append(clients, c)
			hub.Register(c)
			hub.Unregister(c)
		}
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatalf("register/unregister blocked after shutdown")
	}

	for _, c := range clients {
		select {
		case _, ok := <-c.send:
			if ok {
				t.Fatalf("unexpected message on a client registered after shutdown")
			}
		default:
			t.Fatalf("late client must have its send channel closed")
		}
	}
	if n := hub.ClientCount(); n != 0 {
		t.Fatalf("expected no clients, got %d", n)
	}
}
