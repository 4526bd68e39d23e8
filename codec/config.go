package codec

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arco/errs"
)

// Config is a codec configuration record.
//
// Records are plain key/value maps so they can round-trip through JSON
// without schema knowledge; the typed getters perform the loose numeric
// conversions that JSON decoding requires. Every record carries an "id" key
// naming the codec it configures.
type Config map[string]any

// ID returns the codec id of the record, or "" when absent.
func (c Config) ID() string {
	id, _ := c["id"].(string)
	return id
}

// String returns the string value stored under key.
func (c Config) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// Int returns the integer value stored under key.
//
// JSON decoding produces json.Number values and programmatic construction
// produces Go integers; both are accepted. Floats are accepted when they
// hold an integral value.
func (c Config) Int(key string) (int, bool) {
	switch v := c[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}

		return int(v), true
	case gojson.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}

// Float returns the float value stored under key, accepting any numeric
// representation.
func (c Config) Float(key string) (float64, bool) {
	switch v := c[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case gojson.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// Slice returns the list value stored under key.
func (c Config) Slice(key string) ([]any, bool) {
	s, ok := c[key].([]any)
	return s, ok
}

// JSON serializes the record. Map keys are emitted in sorted order, so the
// output is deterministic for a given record.
func (c Config) JSON() ([]byte, error) {
	data, err := gojson.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}

	return data, nil
}

// ParseConfig deserializes a configuration record from JSON.
//
// Numbers are decoded as json.Number to keep 64-bit integer values exact.
//
// Returns:
//   - Config: Parsed record
//   - error: errs.ErrInvalidConfig when the JSON is malformed or the record
//     has no codec id
func ParseConfig(data []byte) (Config, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}

	if cfg.ID() == "" {
		return nil, fmt.Errorf("%w: missing codec id", errs.ErrInvalidConfig)
	}

	return cfg, nil
}

// ParseConfigs deserializes a JSON array of configuration records, as
// embedded in sealed containers.
//
// Returns:
//   - []Config: Parsed records, in array order
//   - error: errs.ErrInvalidConfig when the JSON is malformed or any record
//     has no codec id
func ParseConfigs(data []byte) ([]Config, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var cfgs []Config
	if err := dec.Decode(&cfgs); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}

	for i, cfg := range cfgs {
		if cfg.ID() == "" {
			return nil, fmt.Errorf("%w: record %d has no codec id", errs.ErrInvalidConfig, i)
		}
	}

	return cfgs, nil
}
