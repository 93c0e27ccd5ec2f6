package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"listing_id",
			"guest_id",
			"check_in_date",
			"check_out_date",
			"number_of_guests",
			"total_price",
			"status",
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

			"guest_id": bson.M{
				"bsonType": "string",
			},

			"check_in_date": bson.M{
				"bsonType": "date",
			},

			"check_out_date": bson.M{
				"bsonType": "date",
			},

			"number_of_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"total_price": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
					"completed",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
