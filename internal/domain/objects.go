package domain

// Objects is an insertion-ordered mapping of composite key to instance.
// Re-setting an existing key keeps its position; a deleted key that is set
// again moves to the end.
type Objects struct {
	keys  []string
	items map[string]*Instance
}

// NewObjects returns an empty collection.
func NewObjects() *Objects {
	return &Objects{items: make(map[string]*Instance)}
}

// Get returns the instance stored under key.
func (o *Objects) Get(key string) (*Instance, bool) {
	inst, ok := o.items[key]
	return inst, ok
}

// Has reports whether key is present.
func (o *Objects) Has(key string) bool {
	_, ok := o.items[key]
	return ok
}

// Set stores inst under key.
func (o *Objects) Set(key string, inst *Instance) {
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = inst
}

// Delete removes key and reports whether it was present.
func (o *Objects) Delete(key string) bool {
	if _, ok := o.items[key]; !ok {
		return false
	}
	delete(o.items, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (o *Objects) Len() int {
	return len(o.keys)
}

// Keys returns the keys in iteration order.
func (o *Objects) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Values returns the instances in iteration order.
func (o *Objects) Values() []*Instance {
	out := make([]*Instance, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.items[k])
	}
	return out
}

// Reset drops every entry.
func (o *Objects) Reset() {
	o.keys = nil
	o.items = make(map[string]*Instance)
}
