package trader

import "tradedesk/internal/logger"

// HandlerRegistry maps intent types to their handlers.
type HandlerRegistry struct {
	handlers map[IntentType]IntentHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[IntentType]IntentHandler),
	}
}

// Register adds a handler, replacing any previous handler for the same type.
func (r *HandlerRegistry) Register(h IntentHandler) {
	if h == nil {
		return
	}
	r.handlers[h.Type()] = h
}

func (r *HandlerRegistry) Get(t IntentType) (IntentHandler, bool) {
	h, ok := r.handlers[t]
	return h, ok
}

func (r *HandlerRegistry) Len() int { return len(r.handlers) }

// RegisterDefaultHandlers registers every built-in intent type.
func (r *HandlerRegistry) RegisterDefaultHandlers() {
	r.Register(&BracketLimitHandler{})
	r.Register(&ChaseHandler{})
	r.Register(&MarketHandler{})
	r.Register(&ConditionalHandler{intent: IntentStop})
	r.Register(&ConditionalHandler{intent: IntentMarketStop})
	r.Register(&ConditionalHandler{intent: IntentTakeProfit})
	r.Register(&AutoProtectHandler{})
	logger.Debugf("[trader] registered %d intent handlers", len(r.handlers))
}
