package effectchain

import (
	"errors"
	"fmt"
)

// ErrUnknownEffect is returned when a node references an unregistered effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

type nodeRuntime struct {
	params  Params
	runtime Runtime
}

// Chain owns a serial effect chain: the node list and one runtime per node.
// It is independent of any application engine and is driven from a single
// render goroutine.
type Chain struct {
	ctx      Context
	registry *Registry

	order []string
	nodes map[string]*nodeRuntime

	// Strict makes unknown node types an error instead of skipping them.
	Strict bool
}

// New creates a Chain with the given context and registry.
func New(ctx Context, registry *Registry) *Chain {
	return &Chain{
		ctx:      ctx,
		registry: registry,
		nodes:    make(map[string]*nodeRuntime),
	}
}

// SetContext updates the chain context and reconfigures every node with it,
// e.g. after a sample rate change.
func (c *Chain) SetContext(ctx Context) error {
	c.ctx = ctx

	for _, id := range c.order {
		rt := c.nodes[id]

		err := rt.runtime.Configure(c.ctx, rt.params)
		if err != nil {
			return fmt.Errorf("effectchain: configure node %q (%s): %w", id, rt.params.Type, err)
		}
	}

	return nil
}

// Context returns the current chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// Len returns the number of active nodes.
func (c *Chain) Len() int {
	return len(c.order)
}

// Nodes returns the active node IDs in processing order.
func (c *Chain) Nodes() []string {
	return append([]string(nil), c.order...)
}

// LoadJSON parses a JSON chain description and synchronizes node runtimes.
// An empty string clears the chain.
func (c *Chain) LoadJSON(raw string) error {
	nodes, err := parseChain(raw)
	if err != nil {
		return fmt.Errorf("effectchain: %w", err)
	}

	return c.Load(nodes)
}

// Load synchronizes node runtimes with nodes. Runtimes of nodes whose ID and
// type are unchanged are kept and reconfigured, so generators keep running;
// new or type-changed nodes get a fresh runtime; vanished nodes are dropped.
func (c *Chain) Load(nodes []Params) error {
	next := make(map[string]*nodeRuntime, len(nodes))
	order := make([]string, 0, len(nodes))

	for _, node := range nodes {
		rt := c.nodes[node.ID]
		if rt == nil || rt.params.Type != node.Type {
			runtime, err := c.newRuntime(node.Type)
			if err != nil {
				if errors.Is(err, ErrUnknownEffect) && !c.Strict {
					continue
				}

				return err
			}

			rt = &nodeRuntime{runtime: runtime}
		}

		rt.params = node

		err := rt.runtime.Configure(c.ctx, node)
		if err != nil {
			return fmt.Errorf("effectchain: configure node %q (%s): %w", node.ID, node.Type, err)
		}

		next[node.ID] = rt
		order = append(order, node.ID)
	}

	c.nodes = next
	c.order = order

	return nil
}

// Reset drops all nodes.
func (c *Chain) Reset() {
	c.order = nil
	c.nodes = make(map[string]*nodeRuntime)
}

// Restart resets the state of every node that supports it.
func (c *Chain) Restart() {
	for _, id := range c.order {
		if r, ok := c.nodes[id].runtime.(Resetter); ok {
			r.Reset()
		}
	}
}

// Process runs every non-bypassed node over block in place.
// It returns false if the chain is empty.
func (c *Chain) Process(block []float64) bool {
	if len(c.order) == 0 {
		return false
	}

	if len(block) == 0 {
		return true
	}

	for _, id := range c.order {
		rt := c.nodes[id]
		if rt.params.Bypassed {
			continue
		}

		rt.runtime.Process(block)
	}

	return true
}

// NodeRuntime returns the Runtime for the given node ID, or nil.
func (c *Chain) NodeRuntime(nodeID string) Runtime {
	rt := c.nodes[nodeID]
	if rt == nil {
		return nil
	}

	return rt.runtime
}

func (c *Chain) newRuntime(effectType string) (Runtime, error) {
	factory := c.registry.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, effectType)
	}

	runtime, err := factory(c.ctx)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create %s: %w", effectType, err)
	}

	return runtime, nil
}
