package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const productsLookup = "products"

// dayWindow returns the inclusive bounds of the calendar day containing now,
// in now's location. The upper bound has second granularity, so events inside
// the last 999ms of the day fall outside the window.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

// lastScanPipeline expands one user's history, orders it by scan date, keeps
// the most recent event via a tail slice, and joins its product reference.
func lastScanPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$unwind", Value: "$history"}},
		{{Key: "$sort", Value: bson.D{{Key: "history.date_scan", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$_id",
			"number_scan": bson.M{"$first": "$number_scan"},
			"history":     bson.M{"$push": "$history"},
		}}},
		{{Key: "$project", Value: bson.M{
			"number_scan": 1,
			"history":     bson.M{"$slice": bson.A{"$history", -1}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         productsLookup,
			"localField":   "history.product",
			"foreignField": "_id",
			"as":           "product_info",
		}}},
	}
}

// todayCountPipeline counts the user's scan events inside the calendar day
// containing now. $count emits no row at all over an empty input.
func todayCountPipeline(userID primitive.ObjectID, now time.Time) mongo.Pipeline {
	start, end := dayWindow(now)
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$unwind", Value: "$history"}},
		{{Key: "$match", Value: bson.M{
			"history.date_scan": bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$count", Value: "total_today"}},
	}
}

// historyPipeline joins the whole history array against product records.
func historyPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         productsLookup,
			"localField":   "history.product",
			"foreignField": "_id",
			"as":           "product_info",
		}}},
		{{Key: "$project", Value: bson.M{
			"history":      1,
			"product_info": 1,
		}}},
	}
}
