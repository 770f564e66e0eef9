package config

import "strings"

const (
	defaultAppEnv           = "dev"
	defaultAppLogLevel      = "info"
	defaultHTTPAddr         = ":5000"
	defaultExchangeName     = "binance"
	defaultExchangeREST     = "https://fapi.binance.com"
	defaultExchangeTimeout  = 15
	defaultEnvFile          = ".env"
	defaultAPIKeyEnv        = "API_KEY"
	defaultAPISecretEnv     = "API_SECRET"
	defaultCircuitThreshold = 5
	defaultCircuitCooldown  = 30
	defaultPrecision        = 8
	defaultChaseDepth       = 5
	defaultClientPrefix     = "td"
)

func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.HTTP.applyDefaults(keys)
	c.Exchange.applyDefaults(keys)
	c.Precision.applyDefaults(keys)
	c.Trading.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
	)
	a.LogLevel = strings.ToLower(strings.TrimSpace(a.LogLevel))
}

func (h *HTTPConfig) applyDefaults(keys keySet) {
	if h == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("http.addr", &h.Addr, defaultHTTPAddr),
	)
	h.CORSOrigins = normalizeList(h.CORSOrigins)
}

func (e *ExchangeConfig) applyDefaults(keys keySet) {
	if e == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("exchange.name", &e.Name, defaultExchangeName),
		stringFieldDefault("exchange.rest_base_url", &e.RESTBaseURL, defaultExchangeREST),
		fieldDefault{
			key:   "exchange.http_timeout_seconds",
			need:  func() bool { return e.HTTPTimeoutSeconds <= 0 },
			apply: func() { e.HTTPTimeoutSeconds = defaultExchangeTimeout },
		},
		stringFieldDefault("exchange.env_file", &e.EnvFile, defaultEnvFile),
		stringFieldDefault("exchange.api_key_env", &e.APIKeyEnv, defaultAPIKeyEnv),
		stringFieldDefault("exchange.api_secret_env", &e.APISecretEnv, defaultAPISecretEnv),
		fieldDefault{
			key:   "exchange.circuit.threshold",
			need:  func() bool { return e.Circuit.Threshold <= 0 },
			apply: func() { e.Circuit.Threshold = defaultCircuitThreshold },
		},
		fieldDefault{
			key:   "exchange.circuit.cooldown_seconds",
			need:  func() bool { return e.Circuit.CooldownSeconds <= 0 },
			apply: func() { e.Circuit.CooldownSeconds = defaultCircuitCooldown },
		},
	)
	e.Name = strings.ToLower(strings.TrimSpace(e.Name))
	e.Proxy.normalize()
}

func (p *PrecisionConfig) applyDefaults(keys keySet) {
	if p == nil {
		return
	}
	applyFieldDefaults(keys,
		fieldDefault{
			key:   "precision.default",
			apply: func() { p.Default = defaultPrecision },
		},
	)
	p.SeedPath = strings.TrimSpace(p.SeedPath)
}

func (t *TradingConfig) applyDefaults(keys keySet) {
	if t == nil {
		return
	}
	applyFieldDefaults(keys,
		boolFieldDefault("trading.cancel_before_bracket", &t.CancelBeforeBracket, true),
		fieldDefault{
			key:   "trading.chase_depth",
			need:  func() bool { return t.ChaseDepth <= 0 },
			apply: func() { t.ChaseDepth = defaultChaseDepth },
		},
		stringFieldDefault("trading.client_order_prefix", &t.ClientOrderPrefix, defaultClientPrefix),
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func normalizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
