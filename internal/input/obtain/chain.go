package obtain

import "fmt"

// Chain is a priority-ordered list of strategies; a repeat-argument
// rank selects which one runs.
type Chain struct {
	name       string
	strategies []Strategy
}

// NewChain builds a chain from strategies in rank order.
func NewChain(name string, strategies ...Strategy) *Chain {
	return &Chain{name: name, strategies: strategies}
}

// NewChainFromNames builds a chain from builtin strategy names.
func NewChainFromNames(name string, strategyNames []string) (*Chain, error) {
	strategies := make([]Strategy, 0, len(strategyNames))
	for _, sn := range strategyNames {
		s, err := Builtin(sn)
		if err != nil {
			return nil, fmt.Errorf("chain %q: %w", name, err)
		}
		strategies = append(strategies, s)
	}
	return NewChain(name, strategies...), nil
}

// Name returns the chain's configured name.
func (c *Chain) Name() string {
	return c.name
}

// Len returns the number of strategies in the chain.
func (c *Chain) Len() int {
	return len(c.strategies)
}

// Select returns the strategy at the given rank. A rank beyond the
// chain reports ErrUndefinedRank before any key is read.
func (c *Chain) Select(rank int) (Strategy, error) {
	if rank < 0 || rank >= len(c.strategies) {
		return Strategy{}, fmt.Errorf("%w: rank %d in chain %q of length %d",
			ErrUndefinedRank, rank, c.name, len(c.strategies))
	}
	return c.strategies[rank], nil
}

// Names returns the chain's strategy names in rank order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name
	}
	return names
}
