package utils

import "go.mongodb.org/mongo-driver/v2/bson"

func Oid(hex string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(hex)
}

// IsValidOid reports whether hex is a well-formed 24 character ObjectID.
func IsValidOid(hex string) bool {
	_, err := bson.ObjectIDFromHex(hex)
	return err == nil
}
