package storage

import (
	"fmt"
	"net/url"
	"strings"
)

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

type Item struct {
	Key   string
	Value interface{}
}

// Config is parsed from a storage uri: "file:///path/to/db" or "memory://".
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	config := &Config{Scheme: strings.ToLower(parsed.Scheme)}
	switch config.Scheme {
	case "file":
		if len(parsed.Path) < 1 {
			return nil, fmt.Errorf("empty path for file storage: '%s'", s)
		}
		config.Path = parsed.Path
	case "memory":
	default:
		return nil, fmt.Errorf("unsupported storage scheme: '%s'", parsed.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return fmt.Sprintf("%s://%s", c.Scheme, c.Path)
}

// ListOptions limits and orders `GetIterator`. `Cursor` is the full key to
// start from; the item at the cursor is not returned.
type ListOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

var DefaultMaxLimitListOptions uint64 = 100

func NewStorage(config *Config) (*LevelDBBackend, error) {
	st := &LevelDBBackend{}
	if err := st.Init(config); err != nil {
		return nil, err
	}

	return st, nil
}
