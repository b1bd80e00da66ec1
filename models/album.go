package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Album struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	AlbumID   string        `bson:"album_id" json:"album_id"`
	ArtistID  string        `bson:"artist_id" json:"artist_id"`
	Name      string        `bson:"name" json:"name"`
	Year      int           `bson:"year" json:"year"`
	Hidden    bool          `bson:"hidden" json:"hidden"`
	CoverURL  string        `bson:"coverUrl,omitempty" json:"cover_url,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
