package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// SearchFilter matches posts whose title matches titlePattern
// (case-insensitive) OR whose tags intersect tags. The title branch is always
// present, so an empty pattern matches every post.
func SearchFilter(titlePattern string, tags []string) bson.M {
	or := bson.A{bson.M{"title": bson.Regex{Pattern: titlePattern, Options: "i"}}}
	if len(tags) > 0 {
		or = append(or, bson.M{"tags": bson.M{"$in": tags}})
	}
	return bson.M{"$or": or}
}

// ToggleLikePipeline builds an update pipeline that removes userID from
// likes when present and appends it otherwise, in one atomic write.
func ToggleLikePipeline(userID string) mongo.Pipeline {
	uid := bson.D{{Key: "$literal", Value: userID}}
	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{
				{Key: "$cond", Value: bson.D{
					{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{uid, likes}}}},
					{Key: "then", Value: bson.D{{Key: "$filter", Value: bson.D{
						{Key: "input", Value: likes},
						{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", uid}}}},
					}}}},
					{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{uid}}}}},
				}},
			}},
		}}},
	}
}
