package database

import (
	"context"
	"time"

	"pickem-app-go/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeEvent is one write observed on a watched collection
type ChangeEvent struct {
	Collection string
	Operation  string
	Week       int // 0 when the document did not carry a week
}

// ChangeStreamWatcher follows writes made outside this process, such as
// results posted by the score feed, and reports them to onChange
type ChangeStreamWatcher struct {
	db          *MongoDB
	collections []string
	onChange    func(ChangeEvent)
	retryDelay  time.Duration
	logger      *logging.Logger
}

// NewChangeStreamWatcher creates a watcher over the named collections. Nothing
// is watched until Start is called.
func NewChangeStreamWatcher(db *MongoDB, onChange func(ChangeEvent), collections ...string) *ChangeStreamWatcher {
	return &ChangeStreamWatcher{
		db:          db,
		collections: collections,
		onChange:    onChange,
		retryDelay:  5 * time.Second,
		logger:      logging.WithPrefix("ChangeStream"),
	}
}

// Start watches every collection in its own goroutine until ctx is done
func (w *ChangeStreamWatcher) Start(ctx context.Context) {
	for _, name := range w.collections {
		go w.watchCollection(ctx, name)
	}
}

func (w *ChangeStreamWatcher) watchCollection(ctx context.Context, name string) {
	collection := w.db.GetCollection(name)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	for {
		stream, err := collection.Watch(ctx, pipeline, opts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warnf("Failed to watch %s, retrying in %v: %v", name, w.retryDelay, err)
			if !w.wait(ctx) {
				return
			}
			continue
		}

		w.logger.Infof("Watching %s", name)
		for stream.Next(ctx) {
			var raw bson.M
			if err := stream.Decode(&raw); err != nil {
				w.logger.Warnf("Failed to decode %s change: %v", name, err)
				continue
			}
			event := parseChangeEvent(name, raw)
			w.logger.Debugf("%s %s week=%d", event.Collection, event.Operation, event.Week)
			w.onChange(event)
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			w.logger.Warnf("Stream on %s ended: %v", name, err)
		}
		stream.Close(context.Background())

		if !w.wait(ctx) {
			return
		}
	}
}

// wait reports false once ctx is done
func (w *ChangeStreamWatcher) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(w.retryDelay):
		return true
	}
}

func parseChangeEvent(collection string, raw bson.M) ChangeEvent {
	event := ChangeEvent{Collection: collection}
	if op, ok := raw["operationType"].(string); ok {
		event.Operation = op
	}

	// Deletes carry no full document
	if doc, ok := raw["fullDocument"].(bson.M); ok {
		event.Week = weekValue(doc["week"])
	}
	return event
}

func weekValue(v interface{}) int {
	switch w := v.(type) {
	case int32:
		return int(w)
	case int64:
		return int(w)
	case float64:
		return int(w)
	default:
		return 0
	}
}
