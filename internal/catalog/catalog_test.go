package catalog

import (
	"strings"
	"testing"
)

func TestEncodeFormat(t *testing.T) {
	item := Item{
		ID:          "latte",
		Name:        "Latte",
		Description: "Espresso with steamed milk",
		Category:    "Coffee",
		Price:       4.5,
		Tags:        []string{"hot", "milk"},
		AddOns:      []string{"oat milk"},
	}

	doc := Encode(item)

	want := "Latte: Espresso with steamed milk. Category: Coffee. Price: $4.50. Tags: hot, milk. Add-ons: oat milk."
	if doc.Text != want {
		t.Errorf("Encode text = %q, want %q", doc.Text, want)
	}
	if doc.ItemID != "latte" {
		t.Errorf("Encode ItemID = %q, want %q", doc.ItemID, "latte")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	item := Item{
		ID:          "iced-tea",
		Name:        "Iced Tea",
		Description: "Chilled black tea",
		Category:    "Tea",
		Price:       3.0,
		Tags:        []string{"cold"},
	}

	first := Encode(item)
	for i := 0; i < 10; i++ {
		if got := Encode(item); got != first {
			t.Fatalf("Encode not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestEncodeEmptyCollections(t *testing.T) {
	item := Item{Name: "Espresso", Description: "A shot", Category: "Coffee", Price: 2.5}

	doc := Encode(item)

	if !strings.Contains(doc.Text, "Tags: .") {
		t.Errorf("empty tags not rendered as expected: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Add-ons: .") {
		t.Errorf("empty add-ons not rendered as expected: %q", doc.Text)
	}
}

func TestFind(t *testing.T) {
	items := []Item{
		{ID: "latte", Name: "Latte"},
		{ID: "iced-tea", Name: "Iced Tea"},
	}

	got, ok := Find(items, "latte")
	if !ok || got.ID != "latte" {
		t.Errorf("Find(latte) = %+v, %v; want latte item", got, ok)
	}

	got, ok = Find(items, "ICED TEA")
	if !ok || got.ID != "iced-tea" {
		t.Errorf("Find is not case-insensitive: %+v, %v", got, ok)
	}

	if _, ok := Find(items, "flat white"); ok {
		t.Error("Find returned true for unknown item")
	}
}
