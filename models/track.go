package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Track struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	TrackID   string        `bson:"track_id" json:"track_id"`
	ArtistID  string        `bson:"artist_id" json:"artist_id"`
	AlbumID   string        `bson:"album_id" json:"album_id"`
	Name      string        `bson:"name" json:"name"`
	Duration  int           `bson:"duration" json:"duration"` // seconds
	Hidden    bool          `bson:"hidden" json:"hidden"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
