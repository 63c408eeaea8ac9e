package storage

import (
	"sync"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
)

type Entity string

const (
	EntityTracker  Entity = "tracker"
	EntityCategory Entity = "category"
	EntityRecord   Entity = "record"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one successful write.
type Change struct {
	Entity Entity
	Op     Op
	ID     string
}

type subscription struct {
	id int
	fn func(Change)
}

// Feed fans out store changes to subscribers, synchronously and in
// subscription order.
type Feed struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

// Subscribe registers fn and returns a function that removes it.
func (f *Feed) Subscribe(fn func(Change)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	id := f.next
	f.subs = append(f.subs, subscription{id: id, fn: fn})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers c to every current subscriber. Subscribers may call back
// into the feed.
func (f *Feed) Publish(c Change) {
	f.mu.Lock()
	subs := make([]subscription, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	logger.Debug("store change", "entity", c.Entity, "op", c.Op, "id", c.ID)
	for _, s := range subs {
		s.fn(c)
	}
}

// Observed decorates a Provider and publishes a Change after every
// successful write.
type Observed struct {
	Provider
	feed *Feed
}

// WithFeed wraps p so its writes are announced on a new Feed.
func WithFeed(p Provider) *Observed {
	return &Observed{Provider: p, feed: &Feed{}}
}

func (o *Observed) Feed() *Feed {
	return o.feed
}

func (o *Observed) publish(err error, entity Entity, op Op, id string) error {
	if err == nil {
		o.feed.Publish(Change{Entity: entity, Op: op, ID: id})
	}
	return err
}

func (o *Observed) AddTracker(t models.Tracker) error {
	return o.publish(o.Provider.AddTracker(t), EntityTracker, OpCreate, t.ID)
}

func (o *Observed) UpdateTracker(t models.Tracker) error {
	return o.publish(o.Provider.UpdateTracker(t), EntityTracker, OpUpdate, t.ID)
}

func (o *Observed) DeleteTracker(id string) error {
	return o.publish(o.Provider.DeleteTracker(id), EntityTracker, OpDelete, id)
}

func (o *Observed) AddCategory(c models.Category) error {
	return o.publish(o.Provider.AddCategory(c), EntityCategory, OpCreate, c.ID)
}

func (o *Observed) UpdateCategory(c models.Category) error {
	return o.publish(o.Provider.UpdateCategory(c), EntityCategory, OpUpdate, c.ID)
}

func (o *Observed) DeleteCategory(id string) error {
	return o.publish(o.Provider.DeleteCategory(id), EntityCategory, OpDelete, id)
}

func (o *Observed) AddCompletionRecord(r models.CompletionRecord) error {
	return o.publish(o.Provider.AddCompletionRecord(r), EntityRecord, OpCreate, r.ID)
}

func (o *Observed) DeleteCompletionRecord(trackerID, day string) error {
	return o.publish(o.Provider.DeleteCompletionRecord(trackerID, day), EntityRecord, OpDelete, trackerID+"/"+day)
}
