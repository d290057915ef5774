// Package picker implements one search-and-select screen session: a book
// catalog, a user catalog, a live query filter over each, and the ordered
// book selection that becomes the order payload.
package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bookhive/order_picker_service/common/constants"
	"github.com/bookhive/order_picker_service/internal/catalog"
	"github.com/bookhive/order_picker_service/internal/notify"
	"github.com/bookhive/order_picker_service/internal/search"
	"github.com/bookhive/order_picker_service/internal/selection"
	"github.com/bookhive/order_picker_service/internal/session"
	"github.com/bookhive/order_picker_service/internal/source"
)

var (
	ErrUnknownEntity  = errors.New("entity not in catalog")
	ErrNoCustomer     = errors.New("no customer selected")
	ErrEmptySelection = errors.New("no books selected")
	ErrNotesTooLong   = fmt.Errorf("order notes exceed %d characters", constants.MAX_ORDER_NOTE_LENGTH)
	ErrInvalidStatus  = errors.New("invalid order status")
)

var orderStatuses = map[string]bool{
	"pending":    true,
	"processing": true,
	"completed":  true,
	"cancelled":  true,
}

// EntitySource is what a session needs from the upstream API.
type EntitySource interface {
	FetchBooks(ctx context.Context) ([]catalog.Entity, error)
	FetchUsers(ctx context.Context) ([]catalog.Entity, error)
	CreateOrder(ctx context.Context, payload source.OrderPayload) error
}

// SnapshotInvalidator is implemented by sources that cache catalog
// snapshots; reload busts them before refetching.
type SnapshotInvalidator interface {
	InvalidateSnapshots()
}

// Config carries the per-screen query policies.
type Config struct {
	BookQuery search.Options
	UserQuery search.Options
}

// OrderDetails are the submission fields beyond the selection itself.
type OrderDetails struct {
	Status    string
	Notes     string
	OrderDate string
}

// Result is one search row, with the badge flag for entities already
// selected.
type Result struct {
	Entity   catalog.Entity
	Selected bool
}

// Session owns the state of one open picker screen. A mutex serializes
// mutation; only Load suspends, on the session's own context so that Close
// discards results from screens the user has already left.
type Session struct {
	ID string

	auth     session.Context
	src      EntitySource
	books    *catalog.Cache
	users    *catalog.Cache
	notifier notify.Notifier
	cfg      Config

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	selected   *selection.Set
	customerID string
}

func NewSession(id string, auth session.Context, src EntitySource, notifier notify.Notifier, cfg Config) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:       id,
		auth:     auth,
		src:      src,
		books:    catalog.NewCache(src.FetchBooks),
		users:    catalog.NewCache(src.FetchUsers),
		notifier: notifier,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		selected: selection.NewSet(),
	}
}

// Auth returns the identity this session was opened with.
func (s *Session) Auth() session.Context { return s.auth }

// Seed pre-fills the selection and customer from an existing order. Seeded
// book ids may dangle; they render as placeholders.
func (s *Session) Seed(customerID string, bookIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customerID != "" {
		s.customerID = customerID
	}
	if len(bookIDs) > 0 {
		s.selected = selection.NewSet(bookIDs...)
	}
}

// LoadCatalogs fetches both catalogs. A failed load is non-fatal: the
// affected cache keeps its previous snapshot and search keeps working
// against it until a retry succeeds.
func (s *Session) LoadCatalogs() error {
	s.notifier.Started("load catalog")

	var g errgroup.Group
	g.Go(func() error { return s.books.Load(s.ctx) })
	g.Go(func() error { return s.users.Load(s.ctx) })
	if err := g.Wait(); err != nil {
		s.notifier.Failed("load catalog", err)
		return err
	}

	s.notifier.Succeeded("load catalog")
	return nil
}

// ReloadCatalogs is the retry affordance: it busts cached snapshots where
// the source supports that, then loads again.
func (s *Session) ReloadCatalogs() error {
	if inv, ok := s.src.(SnapshotInvalidator); ok {
		inv.InvalidateSnapshots()
	}
	return s.LoadCatalogs()
}

func (s *Session) CatalogSizes() (books, users int) {
	return s.books.Len(), s.users.Len()
}

// SearchBooks filters the book catalog with the live query.
func (s *Session) SearchBooks(query string) []Result {
	entities := search.Filter(query, s.books.All(), s.cfg.BookQuery)
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]Result, len(entities))
	for i, e := range entities {
		results[i] = Result{Entity: e, Selected: s.selected.Contains(e.ID)}
	}
	return results
}

// SearchUsers filters the user catalog; the selected flag marks the
// current customer.
func (s *Session) SearchUsers(query string) []Result {
	entities := search.Filter(query, s.users.All(), s.cfg.UserQuery)
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]Result, len(entities))
	for i, e := range entities {
		results[i] = Result{Entity: e, Selected: e.ID == s.customerID}
	}
	return results
}

// AddBook appends a catalog book to the selection. Ids outside the catalog
// are rejected so the selection never gains a dangling reference; adding a
// book twice returns selection.DuplicateSelectionError with no mutation.
func (s *Session) AddBook(id string) (catalog.Entity, error) {
	e, ok := s.books.Get(id)
	if !ok {
		return catalog.Entity{}, ErrUnknownEntity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.selected.Add(id); err != nil {
		return catalog.Entity{}, err
	}
	return e, nil
}

// RemoveBook drops a book from the selection. Removing an id that is not
// selected is a no-op.
func (s *Session) RemoveBook(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Remove(id)
}

func (s *Session) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Len()
}

// SelectedBooks resolves the selection in insertion order. Dangling ids
// (seeded from an order whose book was deleted) come back as placeholder
// rows rather than breaking the list.
func (s *Session) SelectedBooks() []catalog.Entity {
	s.mu.Lock()
	ids := s.selected.OrderedIDs()
	s.mu.Unlock()

	out := make([]catalog.Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.books.Get(id); ok {
			out = append(out, e)
			continue
		}
		out = append(out, catalog.Placeholder(catalog.KindBook, id))
	}
	return out
}

// SelectCustomer sets the order's customer; the id must be in the user
// catalog.
func (s *Session) SelectCustomer(id string) (catalog.Entity, error) {
	e, ok := s.users.Get(id)
	if !ok {
		return catalog.Entity{}, ErrUnknownEntity
	}
	s.mu.Lock()
	s.customerID = id
	s.mu.Unlock()
	return e, nil
}

func (s *Session) ClearCustomer() {
	s.mu.Lock()
	s.customerID = ""
	s.mu.Unlock()
}

// Customer returns the current customer, a placeholder when the seeded id
// no longer resolves, or ok=false when none is selected.
func (s *Session) Customer() (catalog.Entity, bool) {
	s.mu.Lock()
	id := s.customerID
	s.mu.Unlock()
	if id == "" {
		return catalog.Entity{}, false
	}
	if e, ok := s.users.Get(id); ok {
		return e, true
	}
	return catalog.Placeholder(catalog.KindUser, id), true
}

// Submit validates the form and sends the order upstream. On failure the
// selection and customer are left untouched so the user retries without
// re-entering anything; on success the form resets for the next order.
func (s *Session) Submit(ctx context.Context, details OrderDetails) error {
	s.mu.Lock()
	customerID := s.customerID
	ids := s.selected.OrderedIDs()
	s.mu.Unlock()

	if customerID == "" {
		return ErrNoCustomer
	}
	if len(ids) == 0 {
		return ErrEmptySelection
	}

	notes := strings.TrimSpace(details.Notes)
	if len(notes) > constants.MAX_ORDER_NOTE_LENGTH {
		return ErrNotesTooLong
	}
	status := details.Status
	if status == "" {
		status = "pending"
	}
	if !orderStatuses[status] {
		return fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}
	orderDate := details.OrderDate
	if orderDate == "" {
		orderDate = time.Now().Format("2006-01-02")
	}

	payload := source.OrderPayload{
		UserID:    customerID,
		BookIDs:   ids,
		Status:    status,
		Notes:     notes,
		OrderDate: orderDate,
	}

	s.notifier.Started("create order")
	if err := s.src.CreateOrder(ctx, payload); err != nil {
		s.notifier.Failed("create order", err)
		return err
	}
	s.notifier.Succeeded("create order")

	s.mu.Lock()
	s.selected = selection.NewSet()
	s.customerID = ""
	s.mu.Unlock()
	return nil
}

// Close cancels any in-flight catalog load. Results arriving afterwards
// are discarded.
func (s *Session) Close() {
	s.cancel()
}
