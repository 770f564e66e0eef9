package app

import (
	"fmt"
	"strings"

	"tradedesk/internal/config"
	"tradedesk/internal/logger"
)

// StartupSummary is logged once before the server starts listening.
type StartupSummary struct {
	Env            string
	Addr           string
	Exchange       string
	RESTBaseURL    string
	Proxy          string
	CORSOrigins    []string
	SeededSymbols  int
	DefaultPrec    int
	CancelBracket  bool
	ChaseDepth     int
	OrderIDPrefix  string
	CircuitSummary string
}

func newStartupSummary(cfg *config.Config, exchangeName string, seeded int) *StartupSummary {
	proxy := "-"
	if cfg.Exchange.Proxy.Enabled {
		proxy = cfg.Exchange.Proxy.RESTURL
	}
	return &StartupSummary{
		Env:            cfg.App.Env,
		Addr:           cfg.HTTP.Addr,
		Exchange:       exchangeName,
		RESTBaseURL:    cfg.Exchange.RESTBaseURL,
		Proxy:          proxy,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		SeededSymbols:  seeded,
		DefaultPrec:    cfg.Precision.Default,
		CancelBracket:  cfg.Trading.CancelBeforeBracket,
		ChaseDepth:     cfg.Trading.ChaseDepth,
		OrderIDPrefix:  cfg.Trading.ClientOrderPrefix,
		CircuitSummary: fmt.Sprintf("%d failures / %ds cooldown", cfg.Exchange.Circuit.Threshold, cfg.Exchange.Circuit.CooldownSeconds),
	}
}

func (s *StartupSummary) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("STARTUP SUMMARY\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "[service]   env=%s addr=%s cors=%s\n", s.Env, s.Addr, formatList(s.CORSOrigins))
	fmt.Fprintf(&b, "[exchange]  %s %s proxy=%s circuit=%s\n", s.Exchange, s.RESTBaseURL, s.Proxy, s.CircuitSummary)
	fmt.Fprintf(&b, "[precision] default=%d seeded=%d\n", s.DefaultPrec, s.SeededSymbols)
	fmt.Fprintf(&b, "[trading]   cancel_before_bracket=%t chase_depth=%d client_order_prefix=%s\n", s.CancelBracket, s.ChaseDepth, s.OrderIDPrefix)
	b.WriteString(strings.Repeat("=", 60))
	return b.String()
}

func (s *StartupSummary) Print() {
	logger.InfoBlock(s.String())
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
