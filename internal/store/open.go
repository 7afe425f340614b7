package store

import (
	"context"
	"fmt"

	"github.com/mind-engage/pizzaquiz/internal/db"
)

// Options selects and configures a backend.
type Options struct {
	Driver string // memory|file|sqlite|postgres
	DSN    string
	File   string
}

func Open(ctx context.Context, o Options) (Store, error) {
	switch o.Driver {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		if o.File == "" {
			o.File = "user_data.json"
		}
		return NewFile(o.File), nil
	case "sqlite", "postgres":
		drv := db.Driver(o.Driver)
		dbh, err := db.Open(ctx, drv, o.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", drv, err)
		}
		return NewSQL(dbh), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", o.Driver)
	}
}
