package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FavoriteCategory string

const (
	FavoriteArtist FavoriteCategory = "artist"
	FavoriteAlbum  FavoriteCategory = "album"
	FavoriteTrack  FavoriteCategory = "track"
)

// ParseFavoriteCategory matches s against the category enum.
func ParseFavoriteCategory(s string) (FavoriteCategory, bool) {
	switch FavoriteCategory(s) {
	case FavoriteArtist, FavoriteAlbum, FavoriteTrack:
		return FavoriteCategory(s), true
	}
	return "", false
}

// CollectionFor maps a favorite category to the catalog collection holding
// the referenced item, and the field its public id lives in.
func (f FavoriteCategory) CollectionFor() (collection string, idField string) {
	switch f {
	case FavoriteArtist:
		return "artists", "artist_id"
	case FavoriteAlbum:
		return "albums", "album_id"
	default:
		return "tracks", "track_id"
	}
}

type Favorite struct {
	ID         bson.ObjectID    `bson:"_id,omitempty" json:"-"`
	FavoriteID string           `bson:"favorite_id" json:"favorite_id"`
	UserID     string           `bson:"user_id" json:"user_id"`
	Category   FavoriteCategory `bson:"category" json:"category"`
	ItemID     string           `bson:"item_id" json:"item_id"`
	Name       string           `bson:"name" json:"name"`
	CreatedAt  time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time        `bson:"updatedAt" json:"updatedAt"`
}
