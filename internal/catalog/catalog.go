package catalog

import (
	"fmt"
	"strings"
)

// Item is one sellable menu entry. Items are read as a full snapshot at
// startup and never mutated afterwards.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Tags        []string `json:"tags"`
	AddOns      []string `json:"addOns"`
}

// Document is the embeddable text form of an Item, linked back to it by ID.
type Document struct {
	ItemID string
	Text   string
}

// Encode converts an Item into its text document for embedding. The output is
// deterministic: identical item fields produce byte-identical text. Every
// searchable field (name, description, category, price, tags, add-ons) is
// included so partial matches on any of them remain retrievable.
func Encode(item Item) Document {
	text := fmt.Sprintf("%s: %s. Category: %s. Price: $%.2f. Tags: %s. Add-ons: %s.",
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		strings.Join(item.Tags, ", "),
		strings.Join(item.AddOns, ", "),
	)
	return Document{ItemID: item.ID, Text: text}
}

// Find returns the menu item whose name matches (case-insensitive), if any.
func Find(items []Item, name string) (Item, bool) {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return Item{}, false
}
