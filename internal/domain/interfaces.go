package domain

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the console depends on them.

// Registry resolves model type names to their handles.
// Implemented by model.Registry.
type Registry interface {
	// Resolve returns the class registered under name.
	Resolve(name string) (*Class, bool)
}

// Storage abstracts the persistence backend for instances.
// Implemented by sqlite.DB and filestore.Store.
type Storage interface {
	// All returns the live key → instance mapping. Mutations of the
	// returned collection are mutations of the store.
	All() *Objects

	// New registers an instance under its composite key and binds the
	// instance's own save hook to this store.
	New(inst *Instance)

	// Save flushes every instance to durable storage.
	Save() error

	// Reload replaces the in-memory mapping with the durable state.
	Reload() error
}
