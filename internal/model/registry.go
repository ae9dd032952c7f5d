// Package model holds the registration table of model types the console
// can address by name.
package model

import (
	"fmt"

	"github.com/hbnb-network/hbnb/internal/domain"
)

// Registry maps type names to class handles. It is filled once at startup
// and read-only afterwards.
type Registry struct {
	classes map[string]*domain.Class
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*domain.Class)}
}

// Register adds cls under its name. It panics if the name is taken.
func (r *Registry) Register(cls *domain.Class) {
	if _, exists := r.classes[cls.Name]; exists {
		panic(fmt.Sprintf("model %s already registered", cls.Name))
	}
	r.classes[cls.Name] = cls
	r.order = append(r.order, cls.Name)
}

// Resolve returns the class registered under name. Names are case-sensitive.
func (r *Registry) Resolve(name string) (*domain.Class, bool) {
	cls, ok := r.classes[name]
	return cls, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
