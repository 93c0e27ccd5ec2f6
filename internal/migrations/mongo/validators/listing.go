package validators

import "go.mongodb.org/mongo-driver/bson"

var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"address",
			"city",
			"country",
			"property_type",
			"price_per_night",
			"max_guests",
			"host_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"city": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"country": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"property_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"apartment",
					"house",
					"villa",
					"condo",
					"cabin",
					"hotel",
					"resort",
				},
			},

			"price_per_night": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"max_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"host_id": bson.M{
				"bsonType": "string",
			},

			"is_active": bson.M{
				"bsonType": []string{"bool", "null"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
