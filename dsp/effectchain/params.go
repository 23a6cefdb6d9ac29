package effectchain

import (
	"math"
	"strings"
)

// Params holds the parsed parameters for a single chain node.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// LookupNum returns a finite numeric parameter and whether it was present.
func (p Params) LookupNum(key string) (float64, bool) {
	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// GetStr returns a trimmed string parameter, or def if missing or blank.
func (p Params) GetStr(key, def string) string {
	v := strings.TrimSpace(p.Str[key])
	if v == "" {
		return def
	}

	return v
}

// GetBool interprets a numeric parameter as a flag: non-zero is true.
func (p Params) GetBool(key string, def bool) bool {
	v, ok := p.LookupNum(key)
	if !ok {
		return def
	}

	return v != 0
}
