package client

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SortOptions configures StartsWith and SortEntries.
type SortOptions struct {
	// Sort is a dotted path into the entry document {"key", "ID", "data"}
	// used as the sort key, e.g. ".data.score". The leading dot is optional,
	// and numeric segments index arrays. Empty keeps snapshot order.
	Sort string
	// Descending reverses the order. Entries without a sort key stay last.
	Descending bool
	// Limit truncates the result when positive.
	Limit int
}

// StartsWith fetches a snapshot of the shard and returns the entries whose
// key starts with prefix, ordered by opts.
func (c *Client) StartsWith(ctx context.Context, prefix string, opts *SortOptions) ([]Entry, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}
	snapshot, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	return FilterSort(prefix, snapshot, opts)
}

// FilterSort returns the entries of snapshot whose key starts with prefix,
// ordered by opts. It returns an empty slice if nothing matches.
func FilterSort(prefix string, snapshot []Entry, opts *SortOptions) ([]Entry, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}

	matched := make([]Entry, 0)
	for _, e := range snapshot {
		if strings.HasPrefix(e.Key, prefix) {
			matched = append(matched, e)
		}
	}

	return SortEntries(matched, opts), nil
}

// SortEntries returns a copy of entries ordered by opts. The sort is stable,
// so entries with equal sort keys keep their relative order.
//
// Sort keys are ordered numbers first (numerically), then strings
// (lexically), then booleans (false first), then other JSON values by their
// encoding. Entries where the path doesn't resolve, or resolves to null, come
// last in both directions.
func SortEntries(entries []Entry, opts *SortOptions) []Entry {
	out := slices.Clone(entries)
	if out == nil {
		out = []Entry{}
	}
	if opts == nil {
		return out
	}

	if path := parseSortPath(opts.Sort); len(path) > 0 {
		type keyed struct {
			entry Entry
			key   sortKey
		}
		items := make([]keyed, len(out))
		for i, e := range out {
			items[i] = keyed{entry: e, key: newSortKey(e, path)}
		}
		slices.SortStableFunc(items, func(a, b keyed) int {
			return compareSortKeys(a.key, b.key, opts.Descending)
		})
		for i, it := range items {
			out[i] = it.entry
		}
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}

	return out
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("%w: expected a non-empty string", ErrInvalidPrefix)
	}
	return nil
}

func parseSortPath(p string) []string {
	p = strings.TrimPrefix(strings.TrimSpace(p), ".")
	if p == "" {
		return nil
	}
	return strings.Split(p, ".")
}

const (
	rankNumber = iota
	rankString
	rankBool
	rankOther
)

type sortKey struct {
	present bool
	rank    int
	num     float64
	str     string
}

func newSortKey(e Entry, path []string) sortKey {
	var cur any = map[string]any{
		"key":  e.Key,
		"ID":   e.Key,
		"data": e.Value.Any(),
	}

	for _, seg := range path {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return sortKey{}
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return sortKey{}
			}
			cur = node[idx]
		default:
			return sortKey{}
		}
	}

	switch v := cur.(type) {
	case nil:
		return sortKey{}
	case float64:
		return sortKey{present: true, rank: rankNumber, num: v}
	case string:
		return sortKey{present: true, rank: rankString, str: v}
	case bool:
		k := sortKey{present: true, rank: rankBool}
		if v {
			k.num = 1
		}
		return k
	default:
		data, _ := json.Marshal(v)
		return sortKey{present: true, rank: rankOther, str: string(data)}
	}
}

func compareSortKeys(a, b sortKey, descending bool) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return 1
	case !b.present:
		return -1
	}

	c := cmp.Compare(a.rank, b.rank)
	if c == 0 {
		switch a.rank {
		case rankNumber, rankBool:
			c = cmp.Compare(a.num, b.num)
		default:
			c = strings.Compare(a.str, b.str)
		}
	}

	if descending {
		return -c
	}
	return c
}
