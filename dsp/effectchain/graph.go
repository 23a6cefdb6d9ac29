package effectchain

import (
	"encoding/json"
	"fmt"
)

// chainNode is a JSON-serializable node of a serial chain.
type chainNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Bypassed bool   `json:"bypassed"`
	Params   any    `json:"params"`
}

// chainState is the root JSON structure of a chain description:
//
//	{"nodes": [{"id": "osc", "type": "generator", "params": {"type": "Saw", "frequency": 220}}]}
//
// Nodes run in the listed order.
type chainState struct {
	Nodes []chainNode `json:"nodes"`
}

// parseChain parses a JSON chain description into node parameters.
// Nodes without an ID or type are skipped. An empty string yields no nodes.
func parseChain(raw string) ([]Params, error) {
	if raw == "" {
		return nil, nil
	}

	var state chainState

	err := json.Unmarshal([]byte(raw), &state)
	if err != nil {
		return nil, fmt.Errorf("invalid chain json: %w", err)
	}

	nodes := make([]Params, 0, len(state.Nodes))
	seen := make(map[string]struct{}, len(state.Nodes))

	for _, n := range state.Nodes {
		if n.ID == "" || n.Type == "" {
			continue
		}

		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}

		seen[n.ID] = struct{}{}

		num, str := parseNodeParams(n.Params)
		nodes = append(nodes, Params{
			ID:       n.ID,
			Type:     n.Type,
			Bypassed: n.Bypassed,
			Num:      num,
			Str:      str,
		})
	}

	return nodes, nil
}

func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case int:
			num[k] = float64(t)
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
