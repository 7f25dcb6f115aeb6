package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseChangeEvent(t *testing.T) {
	tests := []struct {
		name string
		raw  bson.M
		want ChangeEvent
	}{
		{
			name: "result insert",
			raw:  bson.M{"operationType": "insert", "fullDocument": bson.M{"week": int32(3), "home": "KC"}},
			want: ChangeEvent{Collection: "results", Operation: "insert", Week: 3},
		},
		{
			name: "int64 week",
			raw:  bson.M{"operationType": "replace", "fullDocument": bson.M{"week": int64(18)}},
			want: ChangeEvent{Collection: "results", Operation: "replace", Week: 18},
		},
		{
			name: "delete without document",
			raw:  bson.M{"operationType": "delete", "documentKey": bson.M{"_id": "x"}},
			want: ChangeEvent{Collection: "results", Operation: "delete"},
		},
		{
			name: "non-numeric week",
			raw:  bson.M{"operationType": "update", "fullDocument": bson.M{"week": "three"}},
			want: ChangeEvent{Collection: "results", Operation: "update"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChangeEvent("results", tt.raw))
		})
	}
}
