package crawl

// Entry is a URL waiting in the frontier together with its link distance
// from the crawl's base URL.
type Entry struct {
	URL   string
	Depth int
}

// Frontier is a FIFO queue of crawl entries. Popping in insertion order
// yields breadth-first traversal: depths come out non-decreasing.
//
// Frontier is owned by a single crawl and is not safe for concurrent use.
type Frontier struct {
	queue []Entry
	head  int
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push appends url at the given depth to the back of the queue.
// Duplicates are accepted; deduplication happens against the visited set
// when entries are popped.
func (f *Frontier) Push(url string, depth int) {
	f.queue = append(f.queue, Entry{URL: url, Depth: depth})
}

// Pop removes and returns the entry at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Entry, bool) {
	if f.head >= len(f.queue) {
		return Entry{}, false
	}
	entry := f.queue[f.head]
	f.queue[f.head] = Entry{}
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head == len(f.queue) {
		f.queue = f.queue[:0]
		f.head = 0
	} else if f.head > 1024 && f.head*2 > len(f.queue) {
		n := copy(f.queue, f.queue[f.head:])
		f.queue = f.queue[:n]
		f.head = 0
	}
	return entry, true
}

// Len returns the number of entries in the queue.
func (f *Frontier) Len() int {
	return len(f.queue) - f.head
}
