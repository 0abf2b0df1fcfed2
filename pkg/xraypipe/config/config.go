// Package config holds the tunable parameters of an X-ray pipeline and a
// small file loader for them. Values outside their legal ranges are clamped,
// never rejected.
package config

// Config wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not numeric.
func (c Config) Int(key string, defaultVal int) int {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return defaultVal
}

// Int64 returns the 64-bit integer value for key, or defaultVal if missing
// or not numeric.
func (c Config) Int64(key string, defaultVal int64) int64 {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case float64:
		return int64(val)
	}
	return defaultVal
}

// Float returns the float value for key, or defaultVal if missing or not numeric.
func (c Config) Float(key string, defaultVal float64) float64 {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return defaultVal
}

// Floats returns the []float64 value for key, or defaultVal if missing or
// not a numeric list.
func (c Config) Floats(key string, defaultVal []float64) []float64 {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	list, ok := v.([]any)
	if !ok {
		return defaultVal
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		switch val := item.(type) {
		case float64:
			out = append(out, val)
		case int:
			out = append(out, float64(val))
		case int64:
			out = append(out, float64(val))
		default:
			return defaultVal
		}
	}
	return out
}
