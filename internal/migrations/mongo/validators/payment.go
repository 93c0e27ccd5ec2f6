package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"booking_id",
			"amount",
			"status",
			"payment_reference",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"amount": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"completed",
					"failed",
				},
			},

			"payment_reference": bson.M{
				"bsonType": "string",
				"pattern":  "^PAY-[0-9A-F]{12}$",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
