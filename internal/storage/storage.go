package storage

import (
	"context"
	"fmt"
)

// Storage is the persisted key-value scope the stores mirror their state to.
// Values are opaque strings (the stores write JSON) and never expire.
type Storage interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a storage driver.
type Options struct {
	Driver        string
	DataDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the storage driver named in opts.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		r, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverFile, "":
		f, err := NewFile(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
