package session

// Key identifies a cached session.
type Key struct {
	Host  string
	Email string
}

// Cache maps (host, email) to the last cookie that logged in successfully.
// It lives for one run and is owned by a single goroutine.
type Cache struct {
	entries map[Key]string
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]string)}
}

// Get returns the cached cookie, if any.
func (c *Cache) Get(host, email string) (string, bool) {
	v, ok := c.entries[Key{host, email}]
	return v, ok && v != ""
}

// Put stores or overwrites a cookie.
func (c *Cache) Put(host, email, cookie string) {
	c.entries[Key{host, email}] = cookie
}

// Invalidate drops the entry for (host, email).
func (c *Cache) Invalidate(host, email string) {
	delete(c.entries, Key{host, email})
}

// Len returns the number of cached sessions.
func (c *Cache) Len() int { return len(c.entries) }
