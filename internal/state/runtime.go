// Package state holds the process-wide runtime slots shared by the HTTP and MCP front-ends.
package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"mobility-context-service/internal/domain"
)

// Runtime owns the home address and the last computed context package.
// Both slots are overwritten in place; the last package is whichever request
// finished most recently. Safe for concurrent use.
type Runtime struct {
	mu   sync.RWMutex
	home string
	last *domain.ContextPackage
}

func NewRuntime(homeAddress string) *Runtime {
	return &Runtime{home: homeAddress}
}

func (r *Runtime) HomeAddress() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.home
}

func (r *Runtime) SetHomeAddress(address string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.home = address
}

// LastPackage returns a deep copy of the last stored package, or nil.
func (r *Runtime) LastPackage() (*domain.ContextPackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return nil, nil
	}
	return clonePackage(r.last)
}

// StoreLastPackage replaces the last package with a copy of pkg.
func (r *Runtime) StoreLastPackage(pkg *domain.ContextPackage) error {
	cp, err := clonePackage(pkg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = cp
	return nil
}

// Packages are plain JSON trees, so a JSON round trip is a faithful deep copy.
func clonePackage(pkg *domain.ContextPackage) (*domain.ContextPackage, error) {
	b, err := json.Marshal(pkg)
	if err != nil {
		return nil, fmt.Errorf("clone context package: marshal: %w", err)
	}
	var out domain.ContextPackage
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("clone context package: unmarshal: %w", err)
	}
	return &out, nil
}
