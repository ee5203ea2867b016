// Package cache keeps successful parse and guess results in a buntdb store so
// repeated requests skip the parser.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/honganh1206/datetime/datetime"
	"github.com/tidwall/buntdb"
)

// InMemory opens a cache that is never written to disk.
const InMemory = ":memory:"

type Entry struct {
	Format   string            `json:"format"`
	Datetime datetime.Datetime `json:"datetime"`
}

type Cache struct {
	db  *buntdb.DB
	ttl time.Duration
}

// Open opens (or creates) the cache file at path. A zero ttl keeps entries
// until they are overwritten.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}

	return &Cache{db: db, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// parseKey length-prefixes the format so no two (input, format) pairs share
// a key, whatever bytes they contain.
func parseKey(input, format string) string {
	return "parse:" + strconv.Itoa(len(format)) + ":" + format + input
}

func guessKey(input string) string {
	return "guess:" + input
}

// Parse looks up a cached datetime.Parse(input, format) result.
func (c *Cache) Parse(input, format string) (datetime.Datetime, bool, error) {
	e, ok, err := c.get(parseKey(input, format))
	return e.Datetime, ok, err
}

func (c *Cache) PutParse(input, format string, dt datetime.Datetime) error {
	return c.set(parseKey(input, format), Entry{Format: format, Datetime: dt})
}

// Guess looks up a cached datetime.Guess(input) result and its matched format.
func (c *Cache) Guess(input string) (datetime.Datetime, string, bool, error) {
	e, ok, err := c.get(guessKey(input))
	return e.Datetime, e.Format, ok, err
}

func (c *Cache) PutGuess(input, format string, dt datetime.Datetime) error {
	return c.set(guessKey(input), Entry{Format: format, Datetime: dt})
}

func (c *Cache) get(key string) (Entry, bool, error) {
	var e Entry
	err := c.db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(key)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(val), &e)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (c *Cache) set(key string, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	var opts *buntdb.SetOptions
	if c.ttl > 0 {
		opts = &buntdb.SetOptions{Expires: true, TTL: c.ttl}
	}

	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, string(payload), opts)
		return err
	})
}

// Len reports how many entries are currently stored.
func (c *Cache) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n, err
}
