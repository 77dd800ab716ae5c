package source

import (
	"context"
	"fmt"
	"time"

	chstore "allocation-dashboard/internal/storage/clickhouse"
	pgstore "allocation-dashboard/internal/storage/postgres"
)

// Options selects and configures a Source for Open.
type Options struct {
	Kind          string
	Dir           string
	BaseURL       string
	PostgresDSN   string
	ClickHouseDSN string
	Timeout       time.Duration
	Files         map[string]string // initial content for KindMemory
}

// Open builds the Source named by opts.Kind. The returned close function
// releases any connection the source holds and is never nil.
func Open(ctx context.Context, opts Options) (Source, func(), error) {
	noop := func() {}

	switch opts.Kind {
	case KindFile:
		s, err := NewFileSource(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case KindHTTP:
		var httpOpts []HTTPOption
		if opts.Timeout > 0 {
			httpOpts = append(httpOpts, WithTimeout(opts.Timeout))
		}
		s, err := NewHTTPSource(opts.BaseURL, httpOpts...)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case KindPostgres:
		pool, err := pgstore.NewPool(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return NewStoreSource(pgstore.NewResultFileStore(pool), KindPostgres), pool.Close, nil

	case KindClickHouse:
		conn, err := chstore.NewConn(ctx, opts.ClickHouseDSN)
		if err != nil {
			return nil, noop, err
		}
		return NewRowSource(chstore.NewAllocationRowStore(conn), KindClickHouse), func() { _ = conn.Close() }, nil

	case KindMemory:
		return NewMemorySource(opts.Files), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown source kind %q", opts.Kind)
	}
}
