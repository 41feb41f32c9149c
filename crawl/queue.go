// Package crawl — the audit frontier.
// A BFS queue over page URLs with a seen-set, so each page is fetched and
// audited at most once no matter how many internal links point at it.
package crawl

// Queue holds the pages still waiting to be audited, in discovery order.
type Queue struct {
	pages []string
	seen  map[string]bool
	head  int // next page to hand out
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a page URL unless it was already discovered.
func (q *Queue) Add(url string) {
	if q.seen[url] {
		return
	}
	q.seen[url] = true
	q.pages = append(q.pages, url)
}

// HasNext reports whether any discovered pages remain unaudited.
func (q *Queue) HasNext() bool {
	return q.head < len(q.pages)
}

// Next returns the next page to audit and advances past it.
func (q *Queue) Next() string {
	url := q.pages[q.head]
	q.head++
	return url
}

// Visited returns how many distinct pages have been discovered so far.
// The crawl cap compares against this, not against fetch attempts.
func (q *Queue) Visited() int {
	return len(q.seen)
}

// All returns every discovered page URL in BFS order.
func (q *Queue) All() []string {
	return q.pages
}
