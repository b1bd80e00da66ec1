package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Artist struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	ArtistID  string        `bson:"artist_id" json:"artist_id"`
	Name      string        `bson:"name" json:"name"`
	// NameFolded is the accent-stripped lowercase form of Name, kept for
	// the q search filter.
	NameFolded string `bson:"nameFolded" json:"-"`
	Grammy     int    `bson:"grammy" json:"grammy"`
	Hidden    bool          `bson:"hidden" json:"hidden"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
