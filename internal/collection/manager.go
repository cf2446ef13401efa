package collection

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cjex-salaj/site-api/internal/blob"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
)

// SentinelOrder is the order assigned for sorting to records whose file
// carries no explicit order field. They land after every explicitly
// ordered record; ties among them fall back to the display-field compare.
const SentinelOrder = 999

// Entity is implemented by every record type managed as an ordered
// collection.
type Entity interface {
	DisplayName() string
	OrderValue() (int, bool)
	SetOrder(int)
}

// EntityPtr constrains PT to be a pointer to T implementing Entity.
type EntityPtr[T any] interface {
	*T
	Entity
}

// Item is one decoded member of a collection together with its storage
// identity. Path is the durable identifier; the filename is derived once
// at creation time and never renamed on edit.
type Item[T any] struct {
	Entity   *T     `json:"-"`
	Filename string `json:"filename"`
	Path     string `json:"pathname"`
	URL      string `json:"url"`
}

// RenumberFailure records one failed delete+rewrite round trip.
type RenumberFailure struct {
	Path string `json:"pathname"`
	Err  string `json:"error"`
}

// RenumberResult is the first-class outcome of a renumber batch. Partial
// failure leaves already-applied round trips in place; callers reconcile
// against a fresh List rather than trusting a boolean.
type RenumberResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    []RenumberFailure `json:"failed"`
}

// Err returns a non-nil error when any round trip failed.
func (r *RenumberResult) Err() error {
	if r == nil || len(r.Failed) == 0 {
		return nil
	}
	return appErrors.Wrap(
		fmt.Errorf("%d of %d rewrites failed", len(r.Failed), len(r.Failed)+len(r.Succeeded)),
		appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
		"failed to update collection order",
	)
}

// Config assembles a Manager.
type Config[T any] struct {
	Store  blob.Store
	Codec  Codec[T]
	Prefix string
	Logger *zap.Logger

	// KeyFunc derives the file base name (without extension) from an
	// entity at creation time. Defaults to SanitizeKey(DisplayName()).
	KeyFunc func(*T) string

	// GuardDuplicates turns an Add whose derived key already exists into
	// a conflict instead of a silent overwrite.
	GuardDuplicates bool

	// Collator breaks order ties. Defaults to a case-insensitive
	// Romanian collator.
	Collator *collate.Collator
}

// Manager maintains a uniquely-keyed, explicitly-ordered collection of
// entities persisted one-file-per-entity under a shared prefix, using
// only primitive put/list/get/delete operations. No locks, no
// transactions: every write is last-writer-wins per file.
type Manager[T any, PT EntityPtr[T]] struct {
	store           blob.Store
	codec           Codec[T]
	prefix          string
	logger          *zap.Logger
	keyFunc         func(*T) string
	guardDuplicates bool
	collator        *collate.Collator
}

// NewManager constructs a Manager from the given config.
func NewManager[T any, PT EntityPtr[T]](cfg Config[T]) *Manager[T, PT] {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Collator == nil {
		cfg.Collator = collate.New(language.Romanian, collate.IgnoreCase)
	}
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(entity *T) string {
			return SanitizeKey(PT(entity).DisplayName())
		}
	}
	return &Manager[T, PT]{
		store:           cfg.Store,
		codec:           cfg.Codec,
		prefix:          cfg.Prefix,
		logger:          cfg.Logger,
		keyFunc:         keyFunc,
		guardDuplicates: cfg.GuardDuplicates,
		collator:        cfg.Collator,
	}
}

// Prefix returns the storage prefix all members live under.
func (m *Manager[T, PT]) Prefix() string { return m.prefix }

func (m *Manager[T, PT]) orderOf(entity *T) int {
	if n, ok := PT(entity).OrderValue(); ok {
		return n
	}
	return SentinelOrder
}

// List fetches all records under the prefix, decodes each one, drops the
// undecodable with a logged warning, and sorts the remainder by order
// ascending with a locale-aware case-insensitive display-field
// tie-break. It never mutates storage and always reflects storage at the
// moment of the call.
func (m *Manager[T, PT]) List(ctx context.Context) ([]Item[T], error) {
	objects, err := m.store.List(ctx, m.prefix+"/")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			fmt.Sprintf("failed to list %s", m.prefix))
	}

	items := make([]Item[T], 0, len(objects))
	for _, obj := range objects {
		body, err := m.store.Get(ctx, obj.Path)
		if err != nil {
			m.logger.Warn("skipping unreadable record",
				zap.String("pathname", obj.Path), zap.Error(err))
			continue
		}
		entity, err := m.codec.Decode(body)
		if err != nil {
			m.logger.Warn("skipping malformed record",
				zap.String("pathname", obj.Path), zap.Error(err))
			continue
		}
		items = append(items, Item[T]{
			Entity:   entity,
			Filename: obj.Filename,
			Path:     obj.Path,
			URL:      obj.URL,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		oi, oj := m.orderOf(items[i].Entity), m.orderOf(items[j].Entity)
		if oi != oj {
			return oi < oj
		}
		return m.collator.CompareString(
			PT(items[i].Entity).DisplayName(),
			PT(items[j].Entity).DisplayName(),
		) < 0
	})

	return items, nil
}

// Add validates the entity, derives its key from the display field,
// appends it at the end of the current order, and uploads it. Unless
// GuardDuplicates is set, a key collision silently overwrites the
// existing record. Returns the refreshed listing.
func (m *Manager[T, PT]) Add(ctx context.Context, entity *T) ([]Item[T], error) {
	if err := m.codec.Validate(entity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("invalid %s payload", m.codec.Wrapper()))
	}

	items, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	filename := m.keyFunc(entity) + ".json"
	path := m.prefix + "/" + filename

	if m.guardDuplicates {
		exists, err := m.store.Exists(ctx, path)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				"failed to check for existing record")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict,
				fmt.Sprintf("a record named %q already exists", filename))
		}
	}

	PT(entity).SetOrder(len(items))

	body, err := m.codec.Encode(entity)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"failed to encode record")
	}
	if _, err := m.store.Put(ctx, path, body, "application/json"); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"failed to store record")
	}

	return m.List(ctx)
}

// Delete removes a record by its stored pathname. Remaining records keep
// their order values; the gap is left until the next reorder.
func (m *Manager[T, PT]) Delete(ctx context.Context, path string) error {
	if path == "" {
		return appErrors.Clone(appErrors.ErrValidation, "pathname is required")
	}
	if err := m.store.Delete(ctx, path); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"failed to delete record")
	}
	return nil
}

// MoveUp swaps the record at index with its predecessor and renumbers the
// whole collection. Index 0 is a no-op. The returned listing is always
// re-fetched from storage so the caller never displays a stale guess.
func (m *Manager[T, PT]) MoveUp(ctx context.Context, index int) ([]Item[T], *RenumberResult, error) {
	return m.move(ctx, index, -1)
}

// MoveDown swaps the record at index with its successor and renumbers the
// whole collection. The last index is a no-op.
func (m *Manager[T, PT]) MoveDown(ctx context.Context, index int) ([]Item[T], *RenumberResult, error) {
	return m.move(ctx, index, +1)
}

func (m *Manager[T, PT]) move(ctx context.Context, index, dir int) ([]Item[T], *RenumberResult, error) {
	items, err := m.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "index out of range")
	}

	neighbor := index + dir
	if neighbor < 0 || neighbor >= len(items) {
		// Boundary: nothing to do, order values stay untouched.
		return items, &RenumberResult{}, nil
	}

	items[index], items[neighbor] = items[neighbor], items[index]

	result := m.Renumber(ctx, items)

	// Resynchronize with actual storage state regardless of outcome.
	fresh, listErr := m.List(ctx)
	if listErr != nil {
		return nil, result, listErr
	}
	return fresh, result, result.Err()
}

// Renumber assigns order = position to every item of the sequence and
// persists each by deleting the old pathname and re-uploading the same
// filename with the new body. The round trips are dispatched
// concurrently and awaited as a batch; there is no atomicity across
// them, so a partial failure leaves a mixed collection. The result
// reports both halves so callers can reconcile.
func (m *Manager[T, PT]) Renumber(ctx context.Context, items []Item[T]) *RenumberResult {
	result := &RenumberResult{}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for idx := range items {
		wg.Add(1)
		go func(position int, item Item[T]) {
			defer wg.Done()

			err := m.rewrite(ctx, position, item)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				m.logger.Error("order rewrite failed",
					zap.String("pathname", item.Path), zap.Error(err))
				result.Failed = append(result.Failed, RenumberFailure{Path: item.Path, Err: err.Error()})
				return
			}
			result.Succeeded = append(result.Succeeded, item.Path)
		}(idx, items[idx])
	}
	wg.Wait()

	return result
}

func (m *Manager[T, PT]) rewrite(ctx context.Context, position int, item Item[T]) error {
	PT(item.Entity).SetOrder(position)

	body, err := m.codec.Encode(item.Entity)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := m.store.Delete(ctx, item.Path); err != nil {
		return fmt.Errorf("delete old record: %w", err)
	}
	path := m.prefix + "/" + item.Filename
	if _, err := m.store.Put(ctx, path, body, "application/json"); err != nil {
		return fmt.Errorf("rewrite record: %w", err)
	}
	return nil
}
