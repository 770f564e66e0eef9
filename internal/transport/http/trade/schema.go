package tradehttp

import (
	"encoding/json"
	"fmt"
	"strings"

	"tradedesk/internal/pkg/convert"
	"tradedesk/internal/trader"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var numericFields = map[string]bool{
	"quantity":      true,
	"buy_price":     true,
	"sell_price":    true,
	"stop_price":    true,
	"target_price":  true,
	"rr_percentage": true,
	"leverage":      true,
}

func numericString(s string) (json.Number, bool) {
	d, ok := convert.ToDecimal(s)
	if !ok {
		return "", false
	}
	return json.Number(d.String()), true
}

// integerFields decode into Go ints; 5.0 is accepted as 5.
var integerFields = []string{"leverage"}

// normalizeIntegers rewrites integral numbers like 5.0 as 5 so they decode into int fields.
func normalizeIntegers(doc map[string]any) error {
	for _, key := range integerFields {
		val, ok := doc[key]
		if !ok || val == nil {
			continue
		}
		n, isNum := val.(json.Number)
		if !isNum {
			return fmt.Errorf("%s: expected integer", key)
		}
		d, ok := convert.ToDecimal(n.String())
		if !ok || !d.IsInteger() {
			return fmt.Errorf("%s: expected integer, but got %s", key, n)
		}
		doc[key] = json.Number(d.String())
	}
	return nil
}

func positiveNumber() map[string]any {
	return map[string]any{"type": "number", "exclusiveMinimum": 0}
}

func intentSchema(required []string, extra map[string]any) map[string]any {
	props := map[string]any{
		"type":   map[string]any{"type": "string"},
		"symbol": map[string]any{"type": "string", "pattern": `^\s*[A-Za-z0-9]+([/_:-][A-Za-z0-9]+)*\s*$`},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":       "object",
		"required":   append([]string{"type", "symbol"}, required...),
		"properties": props,
	}
}

func intentSchemas() map[trader.IntentType]map[string]any {
	side := map[string]any{"type": "string", "pattern": `^\s*(?i:buy|sell)\s*$`}
	leverage := map[string]any{"type": "integer", "minimum": 1, "maximum": 125}
	return map[trader.IntentType]map[string]any{
		trader.IntentLimit: intentSchema([]string{"quantity", "buy_price", "sell_price"}, map[string]any{
			"quantity":           positiveNumber(),
			"buy_price":          positiveNumber(),
			"sell_price":         positiveNumber(),
			"cancel_open_orders": map[string]any{"type": "boolean"},
			"leverage":           leverage,
		}),
		trader.IntentChase: intentSchema([]string{"quantity", "side"}, map[string]any{
			"quantity": positiveNumber(),
			"side":     side,
		}),
		trader.IntentStop: intentSchema([]string{"quantity", "stop_price"}, map[string]any{
			"quantity":   positiveNumber(),
			"stop_price": positiveNumber(),
		}),
		trader.IntentMarketStop: intentSchema([]string{"quantity", "stop_price"}, map[string]any{
			"quantity":   positiveNumber(),
			"stop_price": positiveNumber(),
		}),
		trader.IntentMarket: intentSchema([]string{"quantity", "side"}, map[string]any{
			"quantity": positiveNumber(),
			"side":     side,
			"leverage": leverage,
		}),
		trader.IntentTakeProfit: intentSchema([]string{"quantity", "target_price"}, map[string]any{
			"quantity":     positiveNumber(),
			"target_price": positiveNumber(),
		}),
		trader.IntentAutoSLTP: intentSchema([]string{"rr_percentage"}, map[string]any{
			"rr_percentage": map[string]any{"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 100},
		}),
	}
}

func compileIntentSchemas() (map[trader.IntentType]*jsonschema.Schema, error) {
	out := make(map[trader.IntentType]*jsonschema.Schema)
	for kind, data := range intentSchemas() {
		schema, err := compileSchema(string(kind), data)
		if err != nil {
			return nil, err
		}
		out[kind] = schema
	}
	return out, nil
}

func compileSchema(name string, data map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(string(raw))); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}
