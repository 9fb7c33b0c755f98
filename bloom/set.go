// Package bloom provides the visited-URL set used by crawls.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set is an exact set of URL strings. A Bloom filter sits in front of the
// member map so that the common "never seen" lookup skips the map; the map
// alone decides membership, so false positives never drop a URL.
//
// Set is not safe for concurrent use.
type Set struct {
	filter  *bloom.BloomFilter
	members map[string]struct{}
	order   []string
}

// NewSet creates a Set sized for n expected URLs with the given Bloom filter
// false positive rate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter:  bloom.NewWithEstimates(n, fpRate),
		members: make(map[string]struct{}),
	}
}

// Add inserts url. It returns false if url was already a member.
func (s *Set) Add(url string) bool {
	if s.Has(url) {
		return false
	}
	s.filter.AddString(url)
	s.members[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Has reports whether url is a member.
func (s *Set) Has(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.members[url]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.order)
}

// Members returns the members in insertion order.
func (s *Set) Members() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// EstimatedCount returns the Bloom filter's approximation of the member
// count. It drifts from Len only through filter saturation.
func (s *Set) EstimatedCount() uint {
	return uint(s.filter.ApproximatedSize())
}
