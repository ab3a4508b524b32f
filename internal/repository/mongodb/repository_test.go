package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDateFilter(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from, to time.Time
		want     bson.M
	}{
		{"open", time.Time{}, time.Time{}, bson.M{}},
		{"from only", from, time.Time{}, bson.M{"date": bson.M{"$gte": from}}},
		{"to only", time.Time{}, to, bson.M{"date": bson.M{"$lte": to}}},
		{"both", from, to, bson.M{"date": bson.M{"$gte": from, "$lte": to}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateFilter(tt.from, tt.to))
		})
	}
}
