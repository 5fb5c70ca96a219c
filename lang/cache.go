package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed constructs keyed by source hash. Repeated
// parsing of identical source, as the formatter and generator both do,
// resolves to one shared AST.
var globalCache sync.Map

// cacheState guards one source's parse so concurrent callers share the
// same result.
type cacheState struct {
	once sync.Once
	ast  *AST
	err  error
}

// ParseReader parses input from an io.Reader and returns the resolved
// AST. The content is hashed and cached after first parse.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*AST, error) {
	// Async read-ahead pre-fetches chunks while earlier ones hash.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// parseStringCached parses with caching. Only option-free parses land
// here; options change resolution output, so ParseString bypasses the
// cache for them.
func parseStringCached(ctx context.Context, source string) (*AST, error) {
	sourceKey := strconv.FormatUint(xxh3.Hash([]byte(source)), 36)

	entry := new(cacheState)

	value, cacheHit := globalCache.LoadOrStore(sourceKey, entry)

	state, ok := value.(*cacheState)
	if !ok {
		// Unreachable unless the cache is corrupted externally.
		return parse(ctx, source)
	}

	state.once.Do(func() {
		state.ast, state.err = parse(ctx, source)
	})

	if cacheHit && state.ast != nil {
		state.ast.logger.TraceContext(
			ctx,
			"cache hit",
			slog.String("source_hash", sourceKey),
			slog.Int("source_length", len(source)),
		)
	}

	return state.ast, state.err
}

// ClearCache removes every cached parse. This is primarily useful for
// testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
