package dto

type AddFavoriteDTO struct {
	Category string `json:"category"`
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
}
