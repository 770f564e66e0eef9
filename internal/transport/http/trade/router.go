package tradehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tradedesk/internal/logger"
	"tradedesk/internal/trader"

	"github.com/gin-gonic/gin"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

const maxBodyBytes = 64 << 10

// TradeExecutor runs one validated intent. *trader.Resolver satisfies it.
type TradeExecutor interface {
	ResolveAndSubmit(ctx context.Context, intent trader.TradeIntent) trader.TradeResult
}

type Router struct {
	executor TradeExecutor
	schemas  map[trader.IntentType]*jsonschema.Schema
}

func NewRouter(executor TradeExecutor) (*Router, error) {
	schemas, err := compileIntentSchemas()
	if err != nil {
		return nil, fmt.Errorf("compile intent schemas: %w", err)
	}
	return &Router{executor: executor, schemas: schemas}, nil
}

func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/execute_trade", r.handleExecuteTrade)
}

func (r *Router) handleExecuteTrade(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		rejectPayload(c, "read body failed")
		return
	}
	if len(body) > maxBodyBytes {
		rejectPayload(c, "payload too large")
		return
	}
	intent, err := r.parseIntent(body)
	if err != nil {
		logger.Warnf("[http] execute_trade rejected ip=%s err=%v", c.ClientIP(), err)
		rejectPayload(c, err.Error())
		return
	}
	res := r.executor.ResolveAndSubmit(c.Request.Context(), intent)
	c.JSON(http.StatusOK, res)
}

// parseIntent checks the payload against the schema of its declared type and decodes it.
// Unknown types pass through so the resolver can answer them.
func (r *Router) parseIntent(body []byte) (trader.TradeIntent, error) {
	if !gjson.ValidBytes(body) {
		return trader.TradeIntent{}, fmt.Errorf("invalid JSON payload")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return trader.TradeIntent{}, fmt.Errorf("payload must be a JSON object")
	}
	kind := trader.IntentType(strings.ToLower(strings.TrimSpace(root.Get("type").String())))
	if kind == "" {
		return trader.TradeIntent{}, fmt.Errorf("type is required")
	}

	doc, err := decodeDocument(body)
	if err != nil {
		return trader.TradeIntent{}, err
	}
	doc["type"] = string(kind)
	if schema, ok := r.schemas[kind]; ok {
		if err := schema.Validate(doc); err != nil {
			return trader.TradeIntent{}, describeValidation(err)
		}
	}
	if err := normalizeIntegers(doc); err != nil {
		return trader.TradeIntent{}, err
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return trader.TradeIntent{}, err
	}
	var intent trader.TradeIntent
	if err := json.Unmarshal(normalized, &intent); err != nil {
		return trader.TradeIntent{}, fmt.Errorf("decode intent: %w", err)
	}
	return intent, nil
}

// decodeDocument keeps numbers exact and turns numeric strings in known numeric fields
// into numbers, so "0.01" and 0.01 validate and decode alike.
func decodeDocument(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	for key, val := range doc {
		if !numericFields[key] {
			continue
		}
		if s, ok := val.(string); ok {
			if n, ok := numericString(s); ok {
				doc[key] = n
			}
		}
	}
	return doc, nil
}

func rejectPayload(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, trader.TradeResult{Success: false, Message: msg})
}

// describeValidation flattens a schema failure to its leaf causes.
func describeValidation(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			loc := strings.TrimPrefix(v.InstanceLocation, "/")
			if loc == "" {
				parts = append(parts, v.Message)
			} else {
				parts = append(parts, loc+": "+v.Message)
			}
			return
		}
		for _, cause := range v.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return fmt.Errorf("invalid payload: %s", strings.Join(parts, "; "))
}
