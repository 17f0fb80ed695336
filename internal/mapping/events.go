package mapping

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber receives catalog removal events. Both callbacks run synchronously
// after the triggering deletion has committed; implementations should return
// quickly and must not mutate the catalog reentrantly.
type Subscriber interface {
	KeywordRemoved(businessName, keywordText string)
	BusinessRemoved(businessName string)
}

// Notifier is a small publish/subscribe registry for catalog removal events.
// It is owned by the Manager that created it and holds no subscriber beyond
// an explicit Unsubscribe or the manager's own lifetime.
type Notifier struct {
	mu          sync.Mutex
	subscribers map[string]Subscriber
}

// NewNotifier returns an empty registry.
func NewNotifier() *Notifier {
	return &Notifier{subscribers: make(map[string]Subscriber)}
}

// Subscribe registers a subscriber and returns the token that removes it again.
func (n *Notifier) Subscribe(sub Subscriber) string {
	token := uuid.NewString()
	n.mu.Lock()
	n.subscribers[token] = sub
	n.mu.Unlock()
	return token
}

// Unsubscribe removes the subscriber registered under token. Unknown tokens
// are ignored.
func (n *Notifier) Unsubscribe(token string) {
	n.mu.Lock()
	delete(n.subscribers, token)
	n.mu.Unlock()
}

func (n *Notifier) snapshot() []Subscriber {
	n.mu.Lock()
	defer n.mu.Unlock()
	subs := make([]Subscriber, 0, len(n.subscribers))
	for _, sub := range n.subscribers {
		subs = append(subs, sub)
	}
	return subs
}

func (n *Notifier) keywordRemoved(businessName, keywordText string) {
	for _, sub := range n.snapshot() {
		sub.KeywordRemoved(businessName, keywordText)
	}
}

func (n *Notifier) businessRemoved(businessName string) {
	for _, sub := range n.snapshot() {
		sub.BusinessRemoved(businessName)
	}
}
