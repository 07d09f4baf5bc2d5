// ABOUTME: Headless view model for the shopping list screen
// ABOUTME: Holds the filtered list, the edit session, debounced search, and the total

package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/harper/shoplist/internal/locale"
	"github.com/harper/shoplist/internal/models"
	"github.com/harper/shoplist/internal/storage"
	"github.com/harper/shoplist/internal/textmatch"
	"github.com/shopspring/decimal"
)

// DefaultDebounce is the quiet period before search text is applied.
const DefaultDebounce = 250 * time.Millisecond

// Labels for the save action.
const (
	SaveLabelNew  = "Save"
	SaveLabelEdit = "Update"
)

// InvalidFormMessage is shown when a form cannot be saved.
const InvalidFormMessage = "Fill in a valid description, quantity and price."

// Prompter is the user-facing collaborator for confirmations and alerts.
type Prompter interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
	Alert(ctx context.Context, title, message string)
}

// Form holds the raw text of the edit fields.
// A zero RegisteredAt means "now" for new items and "unchanged" for edits.
type Form struct {
	Description  string
	Quantity     string
	Price        string
	RegisteredAt time.Time
}

// DateRange bounds RegisteredAt by calendar date, inclusive on both ends.
// A zero From or To leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the date of t falls inside the range. The date of
// t is read in the location of the range's bounds, so an instant stored with
// another offset lands on the day the user sees.
func (r DateRange) Contains(t time.Time) bool {
	if r.From.IsZero() && r.To.IsZero() {
		return true
	}
	d := dateOf(t.In(r.location()))
	if !r.From.IsZero() && d.Before(dateOf(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(dateOf(r.To)) {
		return false
	}
	return true
}

func (r DateRange) location() *time.Location {
	if !r.From.IsZero() {
		return r.From.Location()
	}
	return r.To.Location()
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Snapshot is a copy of the view state handed to shells and subscribers.
type Snapshot struct {
	Loaded    bool
	Items     []models.Item
	Query     string
	Range     *DateRange
	Editing   *models.Item
	Form      Form
	Total     decimal.Decimal
	SaveLabel string
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithClock replaces the timer source used for debouncing.
func WithClock(c Clock) Option {
	return func(vm *ViewModel) { vm.clock = c }
}

// WithDebounce sets the search quiet period.
func WithDebounce(d time.Duration) Option {
	return func(vm *ViewModel) { vm.delay = d }
}

// WithFormat sets the locale used to parse and render form values.
func WithFormat(f *locale.Format) Option {
	return func(vm *ViewModel) { vm.format = f }
}

// WithPrompter sets the confirmation and alert collaborator.
func WithPrompter(p Prompter) Option {
	return func(vm *ViewModel) { vm.prompter = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(vm *ViewModel) { vm.logger = l }
}

// WithStoreSearch makes search text query the store instead of filtering
// the loaded list in memory.
func WithStoreSearch() Option {
	return func(vm *ViewModel) { vm.storeSearch = true }
}

// ViewModel is safe for use from multiple goroutines; debounce callbacks
// run on timer goroutines.
type ViewModel struct {
	store       storage.Repository
	format      *locale.Format
	prompter    Prompter
	clock       Clock
	delay       time.Duration
	logger      *slog.Logger
	storeSearch bool

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	loaded    bool
	master    []models.Item
	visible   []models.Item
	query     string
	dateRange *DateRange
	editing   *models.Item
	form      Form
	gen       uint64
	timer     Timer
	closed    bool
	subs      map[int]func(Snapshot)
	nextSub   int
}

// New creates a ViewModel over store. Call Reload to load items.
func New(store storage.Repository, opts ...Option) *ViewModel {
	vm := &ViewModel{
		store:    store,
		format:   locale.Default(),
		prompter: declinePrompter{},
		clock:    RealClock(),
		delay:    DefaultDebounce,
		logger:   slog.Default(),
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.ctx, vm.cancel = context.WithCancel(context.Background())
	return vm
}

// Close stops any pending search and cancels in-flight store searches.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.gen++
	if vm.timer != nil {
		vm.timer.Stop()
		vm.timer = nil
	}
	vm.mu.Unlock()
	vm.cancel()
}

// Reload replaces the loaded list with the store contents and re-applies the filter.
func (vm *ViewModel) Reload(ctx context.Context) error {
	vm.mu.Lock()
	query := vm.query
	vm.mu.Unlock()

	var (
		items []models.Item
		err   error
	)
	if vm.storeSearch {
		items, err = vm.store.Search(ctx, query)
	} else {
		items, err = vm.store.ListAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	vm.mu.Lock()
	if vm.storeSearch && vm.query != query {
		vm.mu.Unlock()
		vm.logger.Debug("discarding stale search result", "query", query)
		return nil
	}
	vm.master = items
	vm.loaded = true
	vm.refilterLocked()
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.logger.Debug("reloaded items", "count", len(items), "visible", len(snap.Items))
	vm.notify(snap)
	return nil
}

// ApplyFilter shows the loaded items whose description contains query and
// whose date falls in r. It never touches the store.
func (vm *ViewModel) ApplyFilter(query string, r *DateRange) {
	vm.mu.Lock()
	vm.query = query
	vm.dateRange = copyRange(r)
	vm.refilterLocked()
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.notify(snap)
}

// SetDateRange changes the date filter and applies it immediately.
func (vm *ViewModel) SetDateRange(r *DateRange) {
	vm.mu.Lock()
	vm.dateRange = copyRange(r)
	if !vm.loaded {
		vm.mu.Unlock()
		return
	}
	vm.refilterLocked()
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.notify(snap)
}

// OnSearchTextChanged schedules text to be applied once input has been
// quiet for the debounce period. Earlier pending text is superseded.
func (vm *ViewModel) OnSearchTextChanged(text string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed {
		return
	}
	vm.gen++
	gen := vm.gen
	if vm.timer != nil {
		vm.timer.Stop()
	}
	vm.timer = vm.clock.AfterFunc(vm.delay, func() {
		vm.applySearch(gen, text)
	})
}

func (vm *ViewModel) applySearch(gen uint64, text string) {
	vm.mu.Lock()
	if gen != vm.gen || vm.closed {
		vm.mu.Unlock()
		vm.logger.Debug("search superseded", "text", text)
		return
	}
	vm.timer = nil
	vm.query = text

	if vm.storeSearch {
		vm.mu.Unlock()
		if err := vm.Reload(vm.ctx); err != nil && !errors.Is(err, context.Canceled) {
			vm.logger.Error("search failed", "text", text, "error", err)
		}
		return
	}

	vm.refilterLocked()
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.logger.Debug("search applied", "text", text, "visible", len(snap.Items))
	vm.notify(snap)
}

// BeginEdit loads item into the form and switches Save to update mode.
func (vm *ViewModel) BeginEdit(item models.Item) Form {
	vm.mu.Lock()
	editing := item
	vm.editing = &editing
	vm.form = Form{
		Description:  item.Description,
		Quantity:     locale.FormatQuantity(item.Quantity),
		Price:        vm.format.FormatPrice(item.UnitPrice),
		RegisteredAt: item.RegisteredAt,
	}
	form := vm.form
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.notify(snap)
	return form
}

// ClearForm empties the form and leaves edit mode.
func (vm *ViewModel) ClearForm() {
	vm.mu.Lock()
	vm.clearFormLocked()
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.notify(snap)
}

func (vm *ViewModel) clearFormLocked() {
	vm.editing = nil
	vm.form = Form{}
}

// Save validates form and inserts a new item, or updates the item being
// edited. Invalid input is reported through the Prompter and returned as a
// *models.ValidationError without touching the store.
func (vm *ViewModel) Save(ctx context.Context, form Form) error {
	description, quantity, price, err := vm.parseForm(form)
	if err != nil {
		vm.logger.Debug("rejected form", "error", err)
		vm.prompter.Alert(ctx, "Invalid data", InvalidFormMessage)
		return err
	}

	vm.mu.Lock()
	var editing *models.Item
	if vm.editing != nil {
		e := *vm.editing
		editing = &e
	}
	vm.mu.Unlock()

	if editing == nil {
		item := models.NewItem(description, quantity, price)
		if !form.RegisteredAt.IsZero() {
			item.RegisteredAt = form.RegisteredAt
		}
		if _, err := vm.store.Insert(ctx, item); err != nil {
			vm.prompter.Alert(ctx, "Error", err.Error())
			return fmt.Errorf("insert item: %w", err)
		}
		vm.logger.Debug("inserted item", "id", item.ID)
	} else {
		editing.Description = description
		editing.Quantity = quantity
		editing.UnitPrice = price
		if !form.RegisteredAt.IsZero() {
			editing.RegisteredAt = form.RegisteredAt
		}
		n, err := vm.store.Update(ctx, editing)
		if err != nil {
			vm.prompter.Alert(ctx, "Error", err.Error())
			return fmt.Errorf("update item %d: %w", editing.ID, err)
		}
		if n == 0 {
			vm.logger.Warn("edited item no longer exists", "id", editing.ID)
		}
	}

	vm.mu.Lock()
	vm.clearFormLocked()
	vm.mu.Unlock()

	return vm.Reload(ctx)
}

func (vm *ViewModel) parseForm(form Form) (string, int, decimal.Decimal, error) {
	description := strings.TrimSpace(form.Description)
	if description == "" {
		return "", 0, decimal.Zero, &models.ValidationError{Field: "description", Message: InvalidFormMessage}
	}
	if err := models.ValidateDescription(description); err != nil {
		return "", 0, decimal.Zero, err
	}
	quantity, err := locale.ParseQuantity(form.Quantity)
	if err != nil {
		return "", 0, decimal.Zero, &models.ValidationError{Field: "quantity", Message: InvalidFormMessage}
	}
	price, err := vm.format.ParseDecimal(form.Price)
	if err != nil {
		return "", 0, decimal.Zero, &models.ValidationError{Field: "price", Message: InvalidFormMessage}
	}
	return description, quantity, price, nil
}

// Delete removes item after the user confirms. It reports whether the item
// was deleted; a declined confirmation is not an error.
func (vm *ViewModel) Delete(ctx context.Context, item models.Item) (bool, error) {
	ok, err := vm.prompter.Confirm(ctx, "Confirm", fmt.Sprintf("Delete %q?", item.Description))
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	if _, err := vm.store.Delete(ctx, item.ID); err != nil {
		vm.prompter.Alert(ctx, "Error", err.Error())
		return false, fmt.Errorf("delete item %d: %w", item.ID, err)
	}

	vm.mu.Lock()
	if vm.editing != nil && vm.editing.ID == item.ID {
		vm.clearFormLocked()
	}
	vm.mu.Unlock()

	return true, vm.Reload(ctx)
}

// ResetAll deletes every item after the user confirms.
func (vm *ViewModel) ResetAll(ctx context.Context) (bool, error) {
	ok, err := vm.prompter.Confirm(ctx, "Confirm", "Delete ALL items? This cannot be undone.")
	if err != nil {
		return false, fmt.Errorf("confirm reset: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := vm.store.Reset(ctx); err != nil {
		vm.prompter.Alert(ctx, "Error", err.Error())
		return false, fmt.Errorf("reset items: %w", err)
	}
	vm.logger.Info("reset shopping list")

	vm.mu.Lock()
	vm.clearFormLocked()
	vm.mu.Unlock()

	return true, vm.Reload(ctx)
}

// SampleItem returns the example row offered on an empty list.
func SampleItem() *models.Item {
	return models.NewItem("Arroz 5kg", 1, decimal.RequireFromString("27.90"))
}

// AddSample inserts the example row.
func (vm *ViewModel) AddSample(ctx context.Context) (*models.Item, error) {
	item := SampleItem()
	if _, err := vm.store.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("insert sample: %w", err)
	}
	return item, vm.Reload(ctx)
}

// Items returns a copy of the visible list.
func (vm *ViewModel) Items() []models.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]models.Item(nil), vm.visible...)
}

// Total sums quantity times unit price over the visible items.
func (vm *ViewModel) Total() decimal.Decimal {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return models.Total(vm.visible)
}

// SaveLabel names the save action for the current mode.
func (vm *ViewModel) SaveLabel() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.saveLabelLocked()
}

func (vm *ViewModel) saveLabelLocked() string {
	if vm.editing != nil {
		return SaveLabelEdit
	}
	return SaveLabelNew
}

// Snapshot returns a copy of the current state.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (vm *ViewModel) Subscribe(fn func(Snapshot)) func() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := vm.nextSub
	vm.nextSub++
	vm.subs[id] = fn
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		delete(vm.subs, id)
	}
}

func (vm *ViewModel) notify(snap Snapshot) {
	vm.mu.Lock()
	subs := make([]func(Snapshot), 0, len(vm.subs))
	for i := 0; i < vm.nextSub; i++ {
		if fn, ok := vm.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	vm.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (vm *ViewModel) refilterLocked() {
	vm.visible = filter(vm.master, vm.query, vm.dateRange)
}

func (vm *ViewModel) snapshotLocked() Snapshot {
	snap := Snapshot{
		Loaded:    vm.loaded,
		Items:     append([]models.Item(nil), vm.visible...),
		Query:     vm.query,
		Range:     copyRange(vm.dateRange),
		Form:      vm.form,
		Total:     models.Total(vm.visible),
		SaveLabel: vm.saveLabelLocked(),
	}
	if vm.editing != nil {
		e := *vm.editing
		snap.Editing = &e
	}
	return snap
}

// filter returns a new slice; master is never modified.
func filter(master []models.Item, query string, r *DateRange) []models.Item {
	out := make([]models.Item, 0, len(master))
	for _, item := range master {
		if !textmatch.Contains(item.Description, query) {
			continue
		}
		if r != nil && !r.Contains(item.RegisteredAt) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func copyRange(r *DateRange) *DateRange {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// declinePrompter refuses every confirmation and drops alerts.
type declinePrompter struct{}

func (declinePrompter) Confirm(context.Context, string, string) (bool, error) { return false, nil }
func (declinePrompter) Alert(context.Context, string, string)                 {}
