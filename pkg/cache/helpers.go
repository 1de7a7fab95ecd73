package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Key joins parts with ':' so related keys can be removed with DeletePattern.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Remember returns the cached JSON value at key or calls load and caches its result.
// Cache failures are not returned; the loader result is always authoritative.
func Remember[T any](ctx context.Context, c Client, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c != nil {
		if err := c.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if c != nil {
		_ = c.SetJSON(ctx, key, value, ttl)
	}
	return value, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

func parseInt64(data []byte) (int64, error) {
	return strconv.ParseInt(string(data), 10, 64)
}

func formatInt64(value int64) []byte {
	return []byte(strconv.FormatInt(value, 10))
}
