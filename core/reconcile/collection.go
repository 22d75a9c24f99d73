package reconcile

import (
	"encoding/json"
	"hash/fnv"
	"sort"
)

// Collection is the set of distinct photos one user has on one day.
//
// A Collection carries a fingerprint over its members that is independent of
// insertion order, so two collections with the same content can be recognised
// without a full set comparison. Collections are built once and then treated
// as read-only, which makes concurrent reads safe.
type Collection struct {
	ids map[PhotoID]struct{}
	xor uint64
	sum uint64
}

// Fingerprint is an order-independent summary of a collection's members.
type Fingerprint struct {
	Count int
	Xor   uint64
	Sum   uint64
}

// NewCollection returns a collection holding the given ids. Duplicates collapse.
func NewCollection(ids ...PhotoID) *Collection {
	c := &Collection{ids: make(map[PhotoID]struct{}, len(ids))}
	for _, id := range ids {
		c.Add(id)
	}
	return c
}

// Add inserts id. It reports whether id was newly added.
func (c *Collection) Add(id PhotoID) bool {
	if c.ids == nil {
		c.ids = make(map[PhotoID]struct{})
	}
	if _, ok := c.ids[id]; ok {
		return false
	}
	c.ids[id] = struct{}{}
	h := hashID(id)
	c.xor ^= h
	c.sum += h
	return true
}

// Len returns the number of distinct photos.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// IsEmpty reports whether the collection has no photos.
func (c *Collection) IsEmpty() bool {
	return c.Len() == 0
}

// Contains reports whether id is a member.
func (c *Collection) Contains(id PhotoID) bool {
	if c == nil {
		return false
	}
	_, ok := c.ids[id]
	return ok
}

// IDs returns the members in ascending order.
func (c *Collection) IDs() []PhotoID {
	if c == nil {
		return []PhotoID{}
	}
	out := make([]PhotoID, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns a new collection with the members of c and other.
func (c *Collection) Union(other *Collection) *Collection {
	out := NewCollection()
	for _, src := range []*Collection{c, other} {
		if src == nil {
			continue
		}
		for id := range src.ids {
			out.Add(id)
		}
	}
	return out
}

// Difference returns the photos in c that are absent from other.
// Neither operand is modified.
func (c *Collection) Difference(other *Collection) *Collection {
	out := NewCollection()
	if c == nil {
		return out
	}
	for id := range c.ids {
		if !other.Contains(id) {
			out.Add(id)
		}
	}
	return out
}

// Equal reports whether c and other have exactly the same members.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	if c == nil {
		return true
	}
	for id := range c.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Fingerprint returns the collection's fingerprint. It is maintained on every
// Add by combining per-member hashes with XOR and wrapping addition, so it does
// not depend on insertion order.
func (c *Collection) Fingerprint() Fingerprint {
	if c == nil {
		return Fingerprint{}
	}
	return Fingerprint{Count: len(c.ids), Xor: c.xor, Sum: c.sum}
}

// NeedsReconciliationWith is a cheap pre-check for Difference. It returns
// false when c is empty or when both collections fingerprint equal.
// Skipping the check and always calling Difference gives the same result.
func (c *Collection) NeedsReconciliationWith(other *Collection) bool {
	if c.IsEmpty() {
		return false
	}
	return c.Fingerprint() != other.Fingerprint()
}

// MarshalJSON encodes the collection as a sorted array of ids.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (c *Collection) UnmarshalJSON(b []byte) error {
	var ids []PhotoID
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*c = *NewCollection(ids...)
	return nil
}

func hashID(id PhotoID) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
