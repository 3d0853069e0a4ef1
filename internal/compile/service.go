package compile

// Func compiles a document source to output.
type Func func(src []byte) (string, error)

// Result is the outcome of Service.Preview.
type Result struct {
	Output   string
	CacheHit bool
	Key      string
}

// Service compiles documents through a Cache.
type Service struct {
	cache   *Cache
	compile Func
}

// NewService returns a Service. cache may be nil to compile every call.
func NewService(cache *Cache, fn Func) *Service {
	return &Service{cache: cache, compile: fn}
}

// Cache returns the underlying cache, possibly nil.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Preview returns the compiled output of src, from the cache when possible.
//
// Only successful compilations are cached. Two concurrent misses on the same
// source both compile; the later Put wins.
func (s *Service) Preview(src []byte) (Result, error) {
	key := Key(src)
	if s.cache != nil {
		if out, ok := s.cache.Get(key); ok {
			return Result{Output: out, CacheHit: true, Key: key}, nil
		}
	}
	out, err := s.compile(src)
	if err != nil {
		return Result{Key: key}, err
	}
	if s.cache != nil {
		s.cache.Put(key, out)
	}
	return Result{Output: out, Key: key}, nil
}
