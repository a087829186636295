package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/GTDGit/todopro_api/internal/cache"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/repository"
	"github.com/GTDGit/todopro_api/internal/sse"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	next  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	}
	f.next++
	user.ID = f.next
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.Email] = &cp
	return nil
}

type fakeClientStore struct {
	clients []models.Client
	err     error
}

func (f *fakeClientStore) ListByUser(_ context.Context, userID int) ([]models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Client{}
	for _, c := range f.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientStore) Create(_ context.Context, c *models.Client) error {
	if f.err != nil {
		return f.err
	}
	c.ID = len(f.clients) + 1
	f.clients = append(f.clients, *c)
	return nil
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

type sentMessage struct {
	To, Body string
}

func (f *fakeMessenger) SendText(_ context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return fmt.Sprintf("wamid.%d", len(f.sent)), nil
}

type fakeArchiver struct {
	keys []string
	err  error
}

func (f *fakeArchiver) UploadDocument(_ context.Context, kind, name string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, kind+"/"+name)
	return "https://archive.example/" + kind + "/" + name, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sse.EventType
}

func (r *recordingNotifier) NotifyQuote(e sse.EventType, _ *models.Quote) { r.add(e) }
func (r *recordingNotifier) NotifyLead(e sse.EventType, _ *models.Lead)   { r.add(e) }
func (r *recordingNotifier) NotifyCatalog()                               { r.add(sse.EventCatalogUpdated) }

func (r *recordingNotifier) add(e sse.EventType) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingNotifier) has(e sse.EventType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.events {
		if got == e {
			return true
		}
	}
	return false
}

type testClock struct {
	mu  sync.Mutex
	t   time.Time
	seq int
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func (c *testClock) ID(ts time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return fmt.Sprintf("%d-test%05d", ts.UnixMilli(), c.seq)
}

type quoteFixture struct {
	store    *cache.MemoryStore
	catalog  *CatalogService
	calc     *CalculatorService
	quotes   *QuoteService
	notifier *recordingNotifier
	clock    *testClock
}

func newQuoteFixture() *quoteFixture {
	mem := cache.NewMemoryStore()
	notifier := &recordingNotifier{}
	clock := newTestClock()
	catalog := NewCatalogService(repository.NewCatalogStore(mem), notifier, pricing.DefaultAdminFee)
	calc := NewCalculatorService(catalog)
	quotes := NewQuoteService(repository.NewQuoteStore(mem), calc, pricing.NewAssembler(clock.Now, clock.ID), notifier)
	return &quoteFixture{store: mem, catalog: catalog, calc: calc, quotes: quotes, notifier: notifier, clock: clock}
}

func codeLine(code string, units float64) pricing.LineInput {
	return pricing.LineInput{Selection: pricing.Selection{ProductCode: code}, Units: pricing.Numeric(units)}
}
