package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brewkit/brewkit/internal/retrieval"
	"github.com/brewkit/brewkit/internal/tool"
)

// MenuSearcher finds menu entries relevant to a free-text query.
type MenuSearcher interface {
	Retrieve(ctx context.Context, query string, topK int) ([]retrieval.ScoredMatch, error)
}

// RegisterTools registers the order backend's operations with the given
// registry: place_order, get_order, and search_menu. Each tool carries an
// explicit schema; the registry validates arguments before any handler runs.
func RegisterTools(reg *tool.Registry, svc *Service, searcher MenuSearcher) error {
	specs := []tool.Spec{
		{
			Name:        "place_order",
			Description: "Place an order for a menu item. Returns the order confirmation.",
			Parameters: tool.Schema{
				Type: "object",
				Properties: map[string]tool.Property{
					"item":     {Type: "string", Description: "Exact menu item name, e.g. Latte"},
					"quantity": {Type: "integer", Description: "Number of units to order"},
				},
				Required: []string{"item", "quantity"},
			},
			Handler: placeOrderHandler(svc),
		},
		{
			Name:        "get_order",
			Description: "Look up a previously placed order by its ID.",
			Parameters: tool.Schema{
				Type: "object",
				Properties: map[string]tool.Property{
					"order_id": {Type: "string", Description: "ID returned by place_order"},
				},
				Required: []string{"order_id"},
			},
			Handler: getOrderHandler(svc),
		},
		{
			Name:        "search_menu",
			Description: "Semantically search the menu for items matching a description.",
			Parameters: tool.Schema{
				Type: "object",
				Properties: map[string]tool.Property{
					"query": {Type: "string", Description: "What to look for, e.g. a cold caffeinated drink"},
					"limit": {Type: "integer", Description: "Maximum number of results (default 5)"},
				},
				Required: []string{"query"},
			},
			Handler: searchMenuHandler(searcher),
		},
	}

	for _, spec := range specs {
		if err := reg.Register(spec); err != nil {
			return fmt.Errorf("registering %s: %w", spec.Name, err)
		}
	}
	return nil
}

func placeOrderHandler(svc *Service) tool.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		item := args["item"].(string)
		quantity := intArg(args["quantity"])

		order, err := svc.PlaceOrder(ctx, item, quantity)
		if err != nil {
			return "", err
		}

		b, err := json.Marshal(order)
		if err != nil {
			return "", fmt.Errorf("marshalling confirmation: %w", err)
		}
		return string(b), nil
	}
}

func getOrderHandler(svc *Service) tool.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		order, err := svc.GetOrder(ctx, args["order_id"].(string))
		if err != nil {
			return "", err
		}

		b, err := json.Marshal(order)
		if err != nil {
			return "", fmt.Errorf("marshalling order: %w", err)
		}
		return string(b), nil
	}
}

func searchMenuHandler(searcher MenuSearcher) tool.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		query := args["query"].(string)
		limit := 5
		if raw, ok := args["limit"]; ok {
			if l := intArg(raw); l > 0 {
				limit = l
			}
		}

		matches, err := searcher.Retrieve(ctx, query, limit)
		if err != nil {
			return "", err
		}

		type result struct {
			Item  string  `json:"item"`
			Text  string  `json:"text"`
			Score float32 `json:"score"`
		}
		results := make([]result, len(matches))
		for i, m := range matches {
			results[i] = result{Item: m.ItemID, Text: m.Text, Score: m.Score}
		}

		b, err := json.Marshal(results)
		if err != nil {
			return "", fmt.Errorf("marshalling results: %w", err)
		}
		return string(b), nil
	}
}

// intArg normalizes an already schema-validated integer argument, which
// arrives as float64 when decoded from JSON.
func intArg(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}
