package dto

type CreateTrackDTO struct {
	ArtistID string `json:"artist_id"`
	AlbumID  string `json:"album_id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Hidden   bool   `json:"hidden"`
}

// UpdateTrackDTO — all fields are optional pointers
type UpdateTrackDTO struct {
	Name     *string `json:"name"`
	Duration *int    `json:"duration"`
	Hidden   *bool   `json:"hidden"`
}
