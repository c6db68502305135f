package selection

import (
	"fmt"
	"sort"
	"sync"
)

// Names under which the standard strategies are registered.
const (
	NameMedianOf3 = "median3"
	NameCentral   = "central"
	NameRandom    = "random"
)

// StrategyFactory hands out pivot strategies by name.
type StrategyFactory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get returns a new strategy instance for name.
	Get(name string) (PivotStrategy, error)
	// GetAll returns a new instance of every registered strategy, keyed by
	// name.
	GetAll() map[string]PivotStrategy
}

// Factory is a registry of strategy constructors. Each Get builds a fresh
// instance, so strategies carrying state (Random) are never shared between
// callers.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]func() PivotStrategy
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{builders: make(map[string]func() PivotStrategy)}
}

// NewDefaultFactory returns a factory holding the three standard strategies.
// Random instances are seeded with seed.
func NewDefaultFactory(seed uint64) *Factory {
	f := NewFactory()
	f.Register(NameMedianOf3, func() PivotStrategy { return MedianOf3{} })
	f.Register(NameCentral, func() PivotStrategy { return Central{} })
	f.Register(NameRandom, func() PivotStrategy { return NewRandom(seed) })
	return f
}

// Register adds or replaces the constructor for name.
func (f *Factory) Register(name string, build func() PivotStrategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[name] = build
}

// List implements StrategyFactory.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.builders))
	for name := range f.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get implements StrategyFactory.
func (f *Factory) Get(name string) (PivotStrategy, error) {
	f.mu.RLock()
	build, ok := f.builders[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown pivot strategy %q", name)
	}
	return build(), nil
}

// GetAll implements StrategyFactory.
func (f *Factory) GetAll() map[string]PivotStrategy {
	f.mu.RLock()
	defer f.mu.RUnlock()

	all := make(map[string]PivotStrategy, len(f.builders))
	for name, build := range f.builders {
		all[name] = build()
	}
	return all
}
