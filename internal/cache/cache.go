package cache

// Cache defines a generic string-keyed cache
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Purge drops every entry
	Purge()

	// Size returns the current number of items in the cache
	Size() int

	// Stats reports hits and misses
	Stats() Stats
}

// Stats counts lookups since creation or the last Purge
type Stats struct {
	Hits   int
	Misses int
}
