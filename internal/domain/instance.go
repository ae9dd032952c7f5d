// Package domain holds the entity model shared by the console and the
// storage backends: classes, instances, attribute values and the contracts
// between them.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the timestamp format used in string forms and storage.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Reserved attribute names are owned by the instance itself. AttrClass
// names the class member of a stored record.
const (
	AttrID        = "id"
	AttrCreatedAt = "created_at"
	AttrUpdatedAt = "updated_at"
	AttrClass     = "__class__"
)

// IsReserved reports whether name is an attribute the console may not assign.
func IsReserved(name string) bool {
	switch name {
	case AttrID, AttrCreatedAt, AttrUpdatedAt, AttrClass:
		return true
	}
	return false
}

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// Attr is one named attribute.
type Attr struct {
	Name  string
	Value Value
}

// ─── Class ──────────────────────────────────────────────────────────────────

// Class is the handle of a registered model type. Handles are compared by
// identity, never by name.
type Class struct {
	Name     string
	Parent   *Class
	Defaults []Attr
}

// Instantiate creates a new instance with a fresh identifier.
func (c *Class) Instantiate() *Instance {
	ts := now()
	return &Instance{
		Class:     c,
		ID:        uuid.NewString(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// Restore rebuilds a persisted instance.
func (c *Class) Restore(id string, createdAt, updatedAt time.Time, attrs []Attr) *Instance {
	inst := &Instance{Class: c, ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
	for _, a := range attrs {
		inst.setAttr(a.Name, a.Value)
	}
	return inst
}

// Default looks name up in the class defaults, walking up the parents.
func (c *Class) Default(name string) (Value, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		for _, a := range cls.Defaults {
			if a.Name == name {
				return a.Value, true
			}
		}
	}
	return Value{}, false
}

// IsA reports whether c is other or derives from it.
func (c *Class) IsA(other *Class) bool {
	for cls := c; cls != nil; cls = cls.Parent {
		if cls == other {
			return true
		}
	}
	return false
}

// ─── Instance ───────────────────────────────────────────────────────────────

// Instance is an entity of a registered class. Attributes assigned at
// runtime live in an ordered field store; unassigned names fall back to
// the class defaults.
type Instance struct {
	Class     *Class
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	attrs    []Attr
	saveHook func(*Instance) error
}

// Key returns the composite storage key "<Class>.<ID>".
func (i *Instance) Key() string {
	return i.Class.Name + "." + i.ID
}

// Get returns an assigned attribute or the class default.
func (i *Instance) Get(name string) (Value, bool) {
	switch name {
	case AttrID:
		return StringValue(i.ID), true
	case AttrCreatedAt:
		return StringValue(i.CreatedAt.Format(TimeLayout)), true
	case AttrUpdatedAt:
		return StringValue(i.UpdatedAt.Format(TimeLayout)), true
	}
	for _, a := range i.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return i.Class.Default(name)
}

// Set assigns name, creating the attribute if absent.
func (i *Instance) Set(name string, v Value) error {
	if IsReserved(name) {
		return ErrReadOnlyAttribute
	}
	i.setAttr(name, v)
	return nil
}

func (i *Instance) setAttr(name string, v Value) {
	for idx := range i.attrs {
		if i.attrs[idx].Name == name {
			i.attrs[idx].Value = v
			return
		}
	}
	i.attrs = append(i.attrs, Attr{Name: name, Value: v})
}

// Attrs returns the assigned attributes in assignment order.
func (i *Instance) Attrs() []Attr {
	return append([]Attr(nil), i.attrs...)
}

// OnSave binds the persistence hook run by Save.
func (i *Instance) OnSave(hook func(*Instance) error) {
	i.saveHook = hook
}

// Save refreshes UpdatedAt and persists this instance through its hook.
func (i *Instance) Save() error {
	i.UpdatedAt = now()
	if i.saveHook == nil {
		return nil
	}
	return i.saveHook(i)
}

// String renders "[Class] (id) {fields}".
func (i *Instance) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(i.Class.Name)
	b.WriteString("] (")
	b.WriteString(i.ID)
	b.WriteString(") {")
	fields := append([]Attr{
		{Name: AttrID, Value: StringValue(i.ID)},
		{Name: AttrCreatedAt, Value: StringValue(i.CreatedAt.Format(TimeLayout))},
		{Name: AttrUpdatedAt, Value: StringValue(i.UpdatedAt.Format(TimeLayout))},
	}, i.attrs...)
	for idx, a := range fields {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"` + a.Name + `": `)
		b.WriteString(a.Value.Repr())
	}
	b.WriteString("}")
	return b.String()
}
