package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceDefaultMenu(t *testing.T) {
	items, err := FileSource{}.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot with embedded menu: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("embedded menu is empty")
	}
	if _, ok := Find(items, "Latte"); !ok {
		t.Error("embedded menu is missing Latte")
	}
	for _, item := range items {
		if item.ID == "" || item.Name == "" || item.Price <= 0 {
			t.Errorf("embedded menu item %q is incomplete: %+v", item.Name, item)
		}
	}
}

func TestFileSourceCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	content := `[{"id":"flat-white","name":"Flat White","description":"Espresso with microfoam","category":"Coffee","price":4.25,"tags":["hot"],"addOns":[]}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := FileSource{Path: path}.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Flat White" {
		t.Errorf("got %+v, want single Flat White item", items)
	}
}

func TestFileSourceErrors(t *testing.T) {
	if _, err := (FileSource{Path: "/does/not/exist.json"}).Snapshot(); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileSource{Path: path}).Snapshot(); err == nil {
		t.Error("expected error for malformed JSON")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileSource{Path: empty}).Snapshot(); err == nil {
		t.Error("expected error for empty menu")
	}
}
