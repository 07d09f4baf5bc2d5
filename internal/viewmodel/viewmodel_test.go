// ABOUTME: Tests for the shopping list view model
// ABOUTME: Uses a fake store, fake prompter, and manual clock for determinism

package viewmodel

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harper/shoplist/internal/models"
	"github.com/harper/shoplist/internal/storage"
	"github.com/harper/shoplist/internal/textmatch"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory storage.Repository that counts calls.
type fakeStore struct {
	mu       sync.Mutex
	items    map[int64]models.Item
	nextID   int64
	failWith error

	listCalls   int
	searchCalls []string
	inserts     int
	updates     int
	deletes     int
	resets      int
}

var _ storage.Repository = (*fakeStore)(nil)

func newFakeStore(items ...models.Item) *fakeStore {
	s := &fakeStore{items: make(map[int64]models.Item)}
	for _, item := range items {
		s.nextID++
		item.ID = s.nextID
		s.items[item.ID] = item
	}
	return s
}

func (s *fakeStore) sorted() []models.Item {
	out := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if a.Description > b.Description || (a.Description == b.Description && a.ID > b.ID) {
				out[j-1], out[j] = b, a
			}
		}
	}
	return out
}

func (s *fakeStore) ListAll(context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(), nil
}

func (s *fakeStore) Search(_ context.Context, q string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls = append(s.searchCalls, q)
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []models.Item
	for _, item := range s.sorted() {
		if textmatch.Contains(item.Description, q) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &item, nil
}

func (s *fakeStore) Insert(_ context.Context, item *models.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	s.inserts++
	s.nextID++
	item.ID = s.nextID
	s.items[item.ID] = *item
	return item.ID, nil
}

func (s *fakeStore) Update(_ context.Context, item *models.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	s.updates++
	if _, ok := s.items[item.ID]; !ok {
		return 0, nil
	}
	s.items[item.ID] = *item
	return 1, nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if _, ok := s.items[id]; !ok {
		return 0, nil
	}
	delete(s.items, id)
	return 1, nil
}

func (s *fakeStore) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
	s.items = make(map[int64]models.Item)
	s.nextID = 0
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakePrompter answers confirmations with a fixed value and records alerts.
type fakePrompter struct {
	mu       sync.Mutex
	answer   bool
	confirms []string
	alerts   []string
}

func (p *fakePrompter) Confirm(_ context.Context, _, message string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, message)
	return p.answer, nil
}

func (p *fakePrompter) Alert(_ context.Context, _, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

// leakyClock never cancels timers, so superseded callbacks still run.
type leakyClock struct{ *ManualClock }

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) Timer {
	c.ManualClock.AfterFunc(d, f)
	return leakyTimer{}
}

func item(desc string, qty int, price string) models.Item {
	return models.Item{
		Description:  desc,
		Quantity:     qty,
		UnitPrice:    decimal.RequireFromString(price),
		RegisteredAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func descs(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description
	}
	return out
}

type fixture struct {
	store    *fakeStore
	prompter *fakePrompter
	clock    *ManualClock
	vm       *ViewModel
}

func newFixture(t *testing.T, items []models.Item, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		store:    newFakeStore(items...),
		prompter: &fakePrompter{answer: true},
		clock:    NewManualClock(),
	}
	opts = append([]Option{WithClock(f.clock), WithPrompter(f.prompter)}, opts...)
	f.vm = New(f.store, opts...)
	t.Cleanup(f.vm.Close)
	require.NoError(t, f.vm.Reload(context.Background()))
	return f
}

func TestReload_LoadsSortedItems(t *testing.T) {
	f := newFixture(t, []models.Item{item("Feijão", 1, "8.5"), item("Arroz", 1, "20")})

	snap := f.vm.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, []string{"Arroz", "Feijão"}, descs(snap.Items))
	assert.Equal(t, 1, f.store.listCalls)
}

func TestReload_PropagatesStoreError(t *testing.T) {
	f := newFixture(t, nil)
	boom := &storage.Error{Op: "list", Err: errors.New("disk gone")}
	f.store.failWith = boom

	err := f.vm.Reload(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorage)
}

func TestApplyFilter_InMemoryCaseInsensitive(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz 5kg", 1, "27.9"), item("Feijão", 1, "8.5"), item("arroz integral", 1, "9")})

	f.vm.ApplyFilter("ARROZ", nil)
	assert.Equal(t, []string{"Arroz 5kg", "arroz integral"}, descs(f.vm.Items()))

	f.vm.ApplyFilter("   ", nil)
	assert.Len(t, f.vm.Items(), 3)

	assert.Equal(t, 1, f.store.listCalls, "filtering must not query the store")
	assert.Empty(t, f.store.searchCalls)
}

func TestApplyFilter_DateRangeInclusive(t *testing.T) {
	jan10 := item("Arroz", 1, "20")
	jan10.RegisteredAt = time.Date(2026, 1, 10, 23, 59, 0, 0, time.UTC)
	jan12 := item("Café", 1, "15")
	jan12.RegisteredAt = time.Date(2026, 1, 12, 0, 1, 0, 0, time.UTC)
	jan20 := item("Leite", 1, "5")
	jan20.RegisteredAt = time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, []models.Item{jan10, jan12, jan20})

	r := &DateRange{
		From: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}
	f.vm.ApplyFilter("", r)
	assert.Equal(t, []string{"Arroz", "Café"}, descs(f.vm.Items()))

	f.vm.ApplyFilter("caf", r)
	assert.Equal(t, []string{"Café"}, descs(f.vm.Items()))

	f.vm.ApplyFilter("", &DateRange{From: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, []string{"Leite"}, descs(f.vm.Items()))
}

func TestApplyFilter_DateRangeAfterBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	brt := time.FixedZone("BRT", -3*3600)

	src, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "src.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	late := item("Pão", 1, "8")
	late.RegisteredAt = time.Date(2026, 1, 31, 22, 0, 0, 0, brt)
	_, err = src.Insert(ctx, &late)
	require.NoError(t, err)

	data, err := storage.ExportToYAML(ctx, src)
	require.NoError(t, err)

	dst, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "dst.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dst.Close() })
	_, err = storage.ImportFromYAML(ctx, dst, data)
	require.NoError(t, err)

	vm := New(dst, WithClock(NewManualClock()))
	t.Cleanup(vm.Close)
	require.NoError(t, vm.Reload(ctx))

	jan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, brt)
	vm.ApplyFilter("", &DateRange{From: jan31, To: jan31})
	assert.Equal(t, []string{"Pão"}, descs(vm.Items()))

	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, brt)
	vm.ApplyFilter("", &DateRange{From: feb1, To: feb1})
	assert.Empty(t, vm.Items())
}

func TestSetDateRange_KeepsQuery(t *testing.T) {
	old := item("Arroz velho", 1, "20")
	old.RegisteredAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, []models.Item{old, item("Arroz novo", 1, "22"), item("Café", 1, "15")})

	f.vm.ApplyFilter("arroz", nil)
	f.vm.SetDateRange(&DateRange{From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, []string{"Arroz novo"}, descs(f.vm.Items()))

	f.vm.SetDateRange(nil)
	assert.Equal(t, []string{"Arroz novo", "Arroz velho"}, descs(f.vm.Items()))
}

func TestOnSearchTextChanged_OnlyLastTextApplied(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Arara", 1, "1"), item("Feijão", 1, "8")})

	var applied []string
	f.vm.Subscribe(func(s Snapshot) { applied = append(applied, s.Query) })

	f.vm.OnSearchTextChanged("a") // t=0
	f.clock.Advance(50 * time.Millisecond)
	f.vm.OnSearchTextChanged("ar") // t=50
	f.clock.Advance(250 * time.Millisecond)
	f.vm.OnSearchTextChanged("arr") // t=300
	assert.Empty(t, applied, "nothing may be applied before the final quiet period")

	f.clock.Advance(time.Second)
	assert.Equal(t, []string{"arr"}, applied)
	assert.Equal(t, []string{"Arroz"}, descs(f.vm.Items()))
	assert.Equal(t, 1, f.store.listCalls)
}

func TestOnSearchTextChanged_StaleCallbackIgnored(t *testing.T) {
	clock := leakyClock{NewManualClock()}
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Arara", 1, "1")}, WithClock(clock))

	var applied []string
	f.vm.Subscribe(func(s Snapshot) { applied = append(applied, s.Query) })

	f.vm.OnSearchTextChanged("a")
	f.vm.OnSearchTextChanged("ar")
	f.vm.OnSearchTextChanged("arr")

	clock.Advance(time.Second)
	assert.Equal(t, 0, clock.Pending(), "every callback ran")
	assert.Equal(t, []string{"arr"}, applied)
}

func TestOnSearchTextChanged_QuietPeriodApplies(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Feijão", 1, "8")})

	f.vm.OnSearchTextChanged("fei")
	f.clock.Advance(249 * time.Millisecond)
	assert.Len(t, f.vm.Items(), 2)

	f.clock.Advance(2 * time.Millisecond)
	assert.Equal(t, []string{"Feijão"}, descs(f.vm.Items()))
	assert.Equal(t, "fei", f.vm.Snapshot().Query)
}

func TestOnSearchTextChanged_StoreSearch(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Feijão", 1, "8")}, WithStoreSearch())
	require.Equal(t, []string{""}, f.store.searchCalls)

	f.vm.OnSearchTextChanged("a")
	f.vm.OnSearchTextChanged("ar")
	f.vm.OnSearchTextChanged("ARR")
	f.clock.Advance(time.Second)

	assert.Equal(t, []string{"", "ARR"}, f.store.searchCalls)
	assert.Equal(t, []string{"Arroz"}, descs(f.vm.Items()))
	assert.Equal(t, 0, f.store.listCalls)
}

func TestOnSearchTextChanged_CustomDebounce(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Feijão", 1, "8")}, WithDebounce(10*time.Millisecond))

	f.vm.OnSearchTextChanged("arr")
	f.clock.Advance(11 * time.Millisecond)
	assert.Equal(t, []string{"Arroz"}, descs(f.vm.Items()))
}

func TestClose_CancelsPendingSearch(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Feijão", 1, "8")})

	f.vm.OnSearchTextChanged("arr")
	f.vm.Close()
	f.clock.Advance(time.Second)

	assert.Len(t, f.vm.Items(), 2)
	f.vm.OnSearchTextChanged("fei")
	assert.Equal(t, 0, f.clock.Pending())
}

func TestSave_InvalidQuantityDoesNotMutate(t *testing.T) {
	f := newFixture(t, nil)

	err := f.vm.Save(context.Background(), Form{Description: "Arroz", Quantity: "abc", Price: "10"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
	assert.Equal(t, []string{InvalidFormMessage}, f.prompter.alerts)
	assert.Equal(t, 0, f.store.inserts)
	assert.Equal(t, 0, f.store.updates)
}

func TestSave_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		field string
	}{
		{"blank description", Form{Description: "  ", Quantity: "1", Price: "1"}, "description"},
		{"empty quantity", Form{Description: "Arroz", Quantity: "", Price: "1"}, "quantity"},
		{"bad price", Form{Description: "Arroz", Quantity: "1", Price: "dez"}, "price"},
		{"empty price", Form{Description: "Arroz", Quantity: "1", Price: ""}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			err := f.vm.Save(context.Background(), tt.form)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, f.store.inserts)
		})
	}
}

func TestSave_InsertsNewItem(t *testing.T) {
	f := newFixture(t, nil)

	err := f.vm.Save(context.Background(), Form{Description: "Arroz 5kg", Quantity: "2", Price: "27,90"})
	require.NoError(t, err)

	items := f.vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Arroz 5kg", items[0].Description)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("27.90")))
	assert.True(t, f.vm.Total().Equal(decimal.RequireFromString("55.80")))
	assert.Equal(t, SaveLabelNew, f.vm.SaveLabel())
	assert.Equal(t, Form{}, f.vm.Snapshot().Form)
}

func TestSave_AcceptsInvariantPrice(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.vm.Save(context.Background(), Form{Description: "Café", Quantity: "1", Price: "15.50"}))
	assert.True(t, f.vm.Items()[0].UnitPrice.Equal(decimal.RequireFromString("15.5")))
}

func TestSave_UsesFormDate(t *testing.T) {
	f := newFixture(t, nil)
	when := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.vm.Save(context.Background(), Form{Description: "Peru", Quantity: "1", Price: "80", RegisteredAt: when}))
	assert.True(t, f.vm.Items()[0].RegisteredAt.Equal(when))
}

func TestBeginEdit_PopulatesForm(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz 5kg", 3, "27.90")})
	target := f.vm.Items()[0]

	form := f.vm.BeginEdit(target)
	assert.Equal(t, "Arroz 5kg", form.Description)
	assert.Equal(t, "3", form.Quantity)
	assert.Equal(t, "27,9", form.Price)
	assert.Equal(t, SaveLabelEdit, f.vm.SaveLabel())

	snap := f.vm.Snapshot()
	require.NotNil(t, snap.Editing)
	assert.Equal(t, target.ID, snap.Editing.ID)
}

func TestBeginEditThenSave_Updates(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20")})
	target := f.vm.Items()[0]

	form := f.vm.BeginEdit(target)
	form.Quantity = "4"
	require.NoError(t, f.vm.Save(context.Background(), form))

	assert.Equal(t, 0, f.store.inserts)
	assert.Equal(t, 1, f.store.updates)

	items := f.vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, target.ID, items[0].ID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("20")))
	assert.True(t, items[0].RegisteredAt.Equal(target.RegisteredAt))
	assert.Equal(t, SaveLabelNew, f.vm.SaveLabel())
}

func TestSave_TrimsDescription(t *testing.T) {
	f := newFixture(t, []models.Item{item("Feijão", 1, "8")})

	require.NoError(t, f.vm.Save(context.Background(), Form{Description: "  Arroz  ", Quantity: "1", Price: "2"}))
	assert.Equal(t, []string{"Arroz", "Feijão"}, descs(f.vm.Items()))

	form := f.vm.BeginEdit(f.vm.Items()[1])
	form.Description = "\tFeijão preto "
	require.NoError(t, f.vm.Save(context.Background(), form))
	assert.Equal(t, []string{"Arroz", "Feijão preto"}, descs(f.vm.Items()))
}

func TestClearForm_LeavesEditMode(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20")})
	f.vm.BeginEdit(f.vm.Items()[0])

	f.vm.ClearForm()
	assert.Equal(t, SaveLabelNew, f.vm.SaveLabel())
	assert.Nil(t, f.vm.Snapshot().Editing)

	require.NoError(t, f.vm.Save(context.Background(), Form{Description: "Café", Quantity: "1", Price: "15"}))
	assert.Equal(t, 1, f.store.inserts)
	assert.Equal(t, 0, f.store.updates)
}

func TestSave_StoreErrorIsReported(t *testing.T) {
	f := newFixture(t, nil)
	f.store.failWith = &storage.Error{Op: "insert", Err: errors.New("read-only file")}

	err := f.vm.Save(context.Background(), Form{Description: "Arroz", Quantity: "1", Price: "1"})
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.Len(t, f.prompter.alerts, 1)
}

func TestDelete_Declined(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20")})
	f.prompter.answer = false

	deleted, err := f.vm.Delete(context.Background(), f.vm.Items()[0])
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 0, f.store.deletes)
	assert.Len(t, f.vm.Items(), 1)
	assert.Len(t, f.prompter.confirms, 1)
}

func TestDelete_Confirmed(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Café", 1, "15")})

	deleted, err := f.vm.Delete(context.Background(), f.vm.Items()[0])
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"Café"}, descs(f.vm.Items()))
	assert.Contains(t, f.prompter.confirms[0], "Arroz")
}

func TestDelete_EditedItemClearsForm(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20")})
	target := f.vm.Items()[0]
	f.vm.BeginEdit(target)

	_, err := f.vm.Delete(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, SaveLabelNew, f.vm.SaveLabel())
}

func TestResetAll(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20"), item("Café", 1, "15")})

	done, err := f.vm.ResetAll(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, f.vm.Items())
	assert.True(t, f.vm.Total().IsZero())

	f.prompter.answer = false
	_, err = f.vm.AddSample(context.Background())
	require.NoError(t, err)
	done, err = f.vm.ResetAll(context.Background())
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, f.store.resets)
}

func TestAddSample(t *testing.T) {
	f := newFixture(t, nil)

	added, err := f.vm.AddSample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Arroz 5kg", added.Description)
	assert.Equal(t, 1, added.Quantity)
	assert.True(t, added.UnitPrice.Equal(decimal.RequireFromString("27.90")))
	assert.Len(t, f.vm.Items(), 1)
}

func TestTotal_VisibleItemsOnly(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 2, "10.00"), item("Café", 1, "5.50"), item("Leite", 12, "4.99")})

	f.vm.ApplyFilter("", nil)
	assert.True(t, f.vm.Total().Equal(decimal.RequireFromString("85.38")))

	f.vm.ApplyFilter("a", nil)
	assert.Equal(t, []string{"Arroz", "Café"}, descs(f.vm.Items()))
	assert.True(t, f.vm.Total().Equal(decimal.RequireFromString("25.50")))
	assert.True(t, f.vm.Snapshot().Total.Equal(decimal.RequireFromString("25.50")))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20")})

	calls := 0
	unsubscribe := f.vm.Subscribe(func(Snapshot) { calls++ })

	f.vm.ApplyFilter("x", nil)
	assert.Equal(t, 1, calls)

	unsubscribe()
	f.vm.ApplyFilter("", nil)
	assert.Equal(t, 1, calls)
}

func TestSnapshot_IsACopy(t *testing.T) {
	f := newFixture(t, []models.Item{item("Arroz", 1, "20")})

	snap := f.vm.Snapshot()
	snap.Items[0].Description = "mutated"
	assert.Equal(t, "Arroz", f.vm.Items()[0].Description)
}

func TestDefaultPrompterDeclines(t *testing.T) {
	store := newFakeStore(item("Arroz", 1, "20"))
	vm := New(store, WithClock(NewManualClock()))
	defer vm.Close()
	require.NoError(t, vm.Reload(context.Background()))

	deleted, err := vm.Delete(context.Background(), vm.Items()[0])
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{
		From: time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
	assert.True(t, r.Contains(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, 1, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, DateRange{}.Contains(time.Now()))
}

func TestDateRange_ContainsReadsDateInRangeLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	jan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, brt)
	stored := time.Date(2026, 2, 1, 1, 0, 0, 0, time.UTC)

	assert.True(t, DateRange{From: jan31, To: jan31}.Contains(stored))
	assert.True(t, DateRange{To: jan31}.Contains(stored))
	assert.False(t, DateRange{From: jan31.AddDate(0, 0, 1)}.Contains(stored))

	utcJan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.False(t, DateRange{From: utcJan31, To: utcJan31}.Contains(stored))
}
