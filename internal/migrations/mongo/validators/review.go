package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"listing_id",
			"reviewer_id",
			"rating",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"listing_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"reviewer_id": bson.M{
				"bsonType": "string",
			},

			"rating": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  5,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
