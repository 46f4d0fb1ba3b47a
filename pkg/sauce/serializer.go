package sauce

import (
	"log/slog"
	"slices"

	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/getmockd/mocksauce/pkg/logging"
)

// Default query parameter names.
const (
	DefaultSearchKey     = "search"
	DefaultFilterKey     = "filter"
	DefaultSortKey       = "sort"
	DefaultPageNumberKey = "page[number]"
	DefaultPageSizeKey   = "page[size]"
)

// Config holds the per-serializer settings. Zero values select defaults.
type Config struct {
	// SearchFields are the attributes matched by the search filter.
	SearchFields []string `json:"searchByFields,omitempty" yaml:"searchByFields,omitempty"`
	// SearchKey is the filter property that triggers a search.
	SearchKey string `json:"searchKey,omitempty" yaml:"searchKey,omitempty"`
	// FilterKey is the bracketed filter parameter name.
	FilterKey string `json:"filterKey,omitempty" yaml:"filterKey,omitempty"`
	// SortKey is the sort parameter name.
	SortKey string `json:"sortKey,omitempty" yaml:"sortKey,omitempty"`
	// PageNumberKey and PageSizeKey are the pagination parameter names.
	PageNumberKey string `json:"pageNumberKey,omitempty" yaml:"pageNumberKey,omitempty"`
	PageSizeKey   string `json:"pageSizeKey,omitempty" yaml:"pageSizeKey,omitempty"`
	// IgnoreFilters lists filter properties the pipeline leaves alone.
	IgnoreFilters []string `json:"ignoreFilters,omitempty" yaml:"ignoreFilters,omitempty"`
}

// WithDefaults returns c with empty key names replaced by the defaults.
func (c Config) WithDefaults() Config {
	if c.SearchKey == "" {
		c.SearchKey = DefaultSearchKey
	}
	if c.FilterKey == "" {
		c.FilterKey = DefaultFilterKey
	}
	if c.SortKey == "" {
		c.SortKey = DefaultSortKey
	}
	if c.PageNumberKey == "" {
		c.PageNumberKey = DefaultPageNumberKey
	}
	if c.PageSizeKey == "" {
		c.PageSizeKey = DefaultPageSizeKey
	}
	return c
}

// Merge returns c overridden by every non-empty field of override.
func (c Config) Merge(override Config) Config {
	if override.SearchFields != nil {
		c.SearchFields = override.SearchFields
	}
	if override.SearchKey != "" {
		c.SearchKey = override.SearchKey
	}
	if override.FilterKey != "" {
		c.FilterKey = override.FilterKey
	}
	if override.SortKey != "" {
		c.SortKey = override.SortKey
	}
	if override.PageNumberKey != "" {
		c.PageNumberKey = override.PageNumberKey
	}
	if override.PageSizeKey != "" {
		c.PageSizeKey = override.PageSizeKey
	}
	if override.IgnoreFilters != nil {
		c.IgnoreFilters = override.IgnoreFilters
	}
	return c
}

// Hook transforms a filtered, sorted document before pagination. Returning
// nil keeps the document it was given.
type Hook func(doc *jsonapi.Document, req *Request) *jsonapi.Document

// Option configures a Serializer.
type Option func(*Serializer)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithHook installs a hook that runs between sorting and pagination.
func WithHook(hook Hook) Option {
	return func(s *Serializer) {
		s.hook = hook
	}
}

// Serializer runs the filter, sort, hook and paginate pipeline. It holds no
// per-request state and is safe for concurrent use.
type Serializer struct {
	cfg  Config
	hook Hook
	log  *slog.Logger
}

// NewSerializer creates a Serializer.
func NewSerializer(cfg Config, opts ...Option) *Serializer {
	cfg = cfg.WithDefaults()
	cfg.SearchFields = slices.Clone(cfg.SearchFields)
	cfg.IgnoreFilters = slices.Clone(cfg.IgnoreFilters)

	s := &Serializer{cfg: cfg, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Serializer) Config() Config {
	return s.cfg
}

// Serialize applies the pipeline to a collection document and returns the
// result. Single-resource documents are returned as given. doc itself is not
// modified.
func (s *Serializer) Serialize(doc *jsonapi.Document, req *Request) *jsonapi.Document {
	if !doc.IsCollection() {
		return doc
	}
	if req == nil {
		req = &Request{}
	}
	params := req.QueryParams
	idx := jsonapi.NewIndex(doc.Included)

	filters := ExtractFilters(params, s.cfg.FilterKey)
	data := Filter(doc.Collection, idx, filters, FilterOptions{
		IgnoreList:   s.cfg.IgnoreFilters,
		SearchKey:    s.cfg.SearchKey,
		SearchFields: s.cfg.SearchFields,
		Logger:       s.log,
	})

	sortParam := params[s.cfg.SortKey]
	data, err := Sort(data, idx, sortParam)
	if err != nil {
		s.log.Debug("sort skipped", "sort", sortParam, "error", err)
	}

	out := doc.WithCollection(data)

	if s.hook != nil {
		if hooked := s.hook(out, req); hooked != nil {
			out = hooked
		}
	}

	page, ok := ParsePage(params, s.cfg.PageNumberKey, s.cfg.PageSizeKey)
	if !ok || !out.IsCollection() {
		return out
	}
	slice, meta := Paginate(out.Collection, page.Number, page.Size)
	if len(slice) == 0 && meta.Total > 0 {
		s.log.Debug("page out of range", "page", page.Number, "size", page.Size, "pages", meta.Pages)
	}
	return out.WithCollection(slice).WithMeta(meta.Map())
}
