package dto

type CreateAlbumDTO struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Hidden   bool   `json:"hidden"`
}

// CreateAlbumsDTO carries the batch body of add-album.
type CreateAlbumsDTO struct {
	Albums []CreateAlbumDTO `json:"albums"`
}

// UpdateAlbumDTO — all fields are optional pointers
type UpdateAlbumDTO struct {
	Name   *string `json:"name"`
	Year   *int    `json:"year"`
	Hidden *bool   `json:"hidden"`
}
