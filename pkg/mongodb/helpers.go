package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// SortAscending creates an ascending sort option
func SortAscending(field string) bson.D {
	return bson.D{{Key: field, Value: 1}}
}
