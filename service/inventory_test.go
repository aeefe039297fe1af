package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

// ---- fakeStore implementing store.Store for tests ----

type fakeStore struct {
	CreateFn func(item model.Item) (model.Item, error)
	ReadFn   func(id int64) (model.Item, error)
	UpdateFn func(id int64, item model.Item) error
	DeleteFn func(id int64) error
	ListFn   func() ([]model.Item, error)
}

func (f *fakeStore) Create(item model.Item) (model.Item, error) { return f.CreateFn(item) }
func (f *fakeStore) Read(id int64) (model.Item, error)          { return f.ReadFn(id) }
func (f *fakeStore) Update(id int64, item model.Item) error     { return f.UpdateFn(id, item) }
func (f *fakeStore) Delete(id int64) error                      { return f.DeleteFn(id) }
func (f *fakeStore) List() ([]model.Item, error)                { return f.ListFn() }
func (f *fakeStore) Close() error                               { return nil }

func newCSVInventory(t *testing.T) *Inventory {
	t.Helper()
	s, err := store.NewCSVStore(filepath.Join(t.TempDir(), "coats.csv"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewInventory(s)
}

func validFields() ItemFields {
	return ItemFields{Size: model.SizeM, Color: "black", Price: 150, Quantity: 2, Photograph: "photos/black.jpg"}
}

// ---- validation ----

func TestAddItemValidation(t *testing.T) {
	touched := false
	svc := NewInventory(&fakeStore{
		CreateFn: func(item model.Item) (model.Item, error) { touched = true; return item, nil },
		ListFn:   func() ([]model.Item, error) { return nil, nil },
	})

	cases := map[string]ItemFields{
		"negative price":    {Size: model.SizeM, Color: "black", Price: -1, Quantity: 2},
		"negative quantity": {Size: model.SizeM, Color: "black", Price: 150, Quantity: -1},
		"unknown size":      {Size: "XS", Color: "black", Price: 150, Quantity: 2},
		"delimiter in text": {Size: model.SizeM, Color: "black|beige", Price: 150, Quantity: 2},
		"newline in color":  {Size: model.SizeM, Color: "black\n2|M|red|9|9|x.jpg", Price: 150, Quantity: 2},
		"carriage return":   {Size: model.SizeM, Color: "black", Price: 150, Quantity: 2, Photograph: "a.jpg\r"},
		"newline in photo":  {Size: model.SizeM, Color: "black", Price: 150, Quantity: 2, Photograph: "photos/\na.jpg"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.AddItem(fields); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if touched {
				t.Fatalf("validation failure must not reach the store")
			}
		})
	}
}

func TestInvalidInputLeavesListUnchanged(t *testing.T) {
	svc := newCSVInventory(t)
	if _, err := svc.AddItem(ItemFields{Size: model.SizeM, Color: "black", Price: -1, Quantity: 2}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	items, err := svc.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("list changed after rejected input: %+v", items)
	}
	// nothing to undo either: the command was never built
	if err := svc.Undo(); err == nil {
		t.Fatalf("expected empty undo history")
	}
}

// A value with an embedded newline would split a text-backend line record
// in two and make the file unreadable on the next open. Validation has to
// stop it before it ever reaches the store.
func TestRejectedInputCannotCorruptTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coats.txt")
	s, err := store.NewTextStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := NewInventory(s)

	if _, err := svc.AddItem(validFields()); err != nil {
		t.Fatalf("add: %v", err)
	}
	forged := ItemFields{Size: model.SizeM, Color: "black\n2|M|red|9|9|x.jpg", Price: 150, Quantity: 2}
	if _, err := svc.AddItem(forged); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// the file must still decode cleanly
	reopened, err := store.NewTextStore(path)
	if err != nil {
		t.Fatalf("reopen after rejected input: %v", err)
	}
	items, err := reopened.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected the one valid item, got %+v", items)
	}
}

func TestRemoveUnknownItem(t *testing.T) {
	svc := newCSVInventory(t)
	added, err := svc.AddItem(validFields())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.RemoveItem(added.ID + 100); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	items, _ := svc.ListItems()
	if len(items) != 1 {
		t.Fatalf("list changed after failed remove: %+v", items)
	}
}

// ---- end-to-end scenarios ----

func TestAddThenCountScenario(t *testing.T) {
	svc := newCSVInventory(t)

	added, err := svc.AddItem(validFields())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == 0 {
		t.Fatalf("expected a generated id")
	}

	items, _ := svc.ListItems()
	if len(items) != 1 || items[0] != added {
		t.Fatalf("unexpected list: %+v", items)
	}

	below, atOrAbove, err := svc.CountByPriceThreshold(200)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if below != 1 || atOrAbove != 0 {
		t.Fatalf("expected (1, 0), got (%d, %d)", below, atOrAbove)
	}
}

func TestUndoRestoresRemovedItem(t *testing.T) {
	svc := newCSVInventory(t)

	if _, err := svc.AddItem(validFields()); err != nil {
		t.Fatalf("add: %v", err)
	}
	pricey, err := svc.AddItem(ItemFields{Size: model.SizeL, Color: "navy", Price: 250, Quantity: 1, Photograph: "photos/navy.jpg"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.RemoveItem(pricey.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if items, _ := svc.ListItems(); len(items) != 1 {
		t.Fatalf("expected 1 item after remove, got %d", len(items))
	}

	if err := svc.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	items, _ := svc.ListItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after undo, got %d", len(items))
	}
	if items[1] != pricey {
		t.Fatalf("restored item diverged: %+v", items[1])
	}
}

func TestUpdateUndoRedoRoundTrip(t *testing.T) {
	svc := newCSVInventory(t)
	added, err := svc.AddItem(validFields())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	newFields := ItemFields{Size: model.SizeXL, Color: "olive", Price: 310, Quantity: 1, Photograph: "photos/olive.jpg"}
	if err := svc.UpdateItem(added.ID, newFields); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := svc.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	got, _ := svc.GetItem(added.ID)
	if got != added {
		t.Fatalf("undo did not restore original: %+v", got)
	}

	if err := svc.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	got, _ = svc.GetItem(added.ID)
	if got.Size != model.SizeXL || got.Price != 310 {
		t.Fatalf("redo did not reapply update: %+v", got)
	}
}

// ---- queries ----

func TestFilterBySize(t *testing.T) {
	svc := NewInventory(&fakeStore{
		ListFn: func() ([]model.Item, error) {
			return []model.Item{
				{ID: 1, Size: model.SizeM, Price: 100},
				{ID: 2, Size: model.SizeL, Price: 200},
				{ID: 3, Size: model.SizeM, Price: 300},
			}, nil
		},
	})
	got, err := svc.FilterBySize(model.SizeM)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	empty, _ := svc.FilterBySize(model.SizeXXL)
	if len(empty) != 0 {
		t.Fatalf("expected no XXL coats, got %+v", empty)
	}
}

func TestCountByPriceThresholdBoundary(t *testing.T) {
	svc := NewInventory(&fakeStore{
		ListFn: func() ([]model.Item, error) {
			return []model.Item{
				{ID: 1, Price: 199.99},
				{ID: 2, Price: 200}, // at threshold counts as atOrAbove
				{ID: 3, Price: 201},
			}, nil
		},
	})
	below, atOrAbove, err := svc.CountByPriceThreshold(200)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if below != 1 || atOrAbove != 2 {
		t.Fatalf("expected (1, 2), got (%d, %d)", below, atOrAbove)
	}
}

func TestListStoreErrorPropagates(t *testing.T) {
	svc := NewInventory(&fakeStore{
		ListFn: func() ([]model.Item, error) { return nil, errors.New("disk gone") },
	})
	if _, err := svc.ListItems(); err == nil {
		t.Fatalf("expected store error to propagate")
	}
	if _, _, err := svc.CountByPriceThreshold(10); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
