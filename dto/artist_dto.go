package dto

type CreateArtistDTO struct {
	Name   string `json:"name" binding:"required"`
	Grammy int    `json:"grammy" binding:"min=0"`
	Hidden bool   `json:"hidden"`
}

// UpdateArtistDTO — all fields are optional pointers
type UpdateArtistDTO struct {
	Name   *string `json:"name"`
	Grammy *int    `json:"grammy"`
	Hidden *bool   `json:"hidden"`
}
