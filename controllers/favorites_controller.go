package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/melodexbackend/database"
	"github.com/princinho/melodexbackend/dto"
	"github.com/princinho/melodexbackend/models"
	"github.com/princinho/melodexbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GET /api/v1/favorites/:category
//
// Favorites are always scoped to the caller; there is no way to read another
// user's list.
func GetFavorites() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		category, ok := models.ParseFavoriteCategory(c.Param("category"))
		if !ok {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid category.", nil)
			return
		}

		limit, offset, err := utils.ParseLimitOffset(c.Query("limit"), c.Query("offset"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid limit or offset.", err.Error())
			return
		}

		userID := c.GetString("userID")
		favoritesCol := database.OpenCollection("favorites")

		opts := options.Find().
			SetSkip(offset).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := favoritesCol.Find(ctx, bson.M{"user_id": userID, "category": category}, opts)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		defer cursor.Close(ctx)

		favorites := make([]models.Favorite, 0)
		for cursor.Next(ctx) {
			var f models.Favorite
			if err := cursor.Decode(&f); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
				return
			}
			favorites = append(favorites, f)
		}
		if err := cursor.Err(); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, favorites, "Favorites retrieved successfully.")
	}
}

// POST /api/v1/favorites/add-favorite
func AddFavorite() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.AddFavoriteDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid body.", err.Error())
			return
		}

		name := strings.TrimSpace(body.Name)
		if body.Category == "" || body.ItemID == "" || name == "" {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Missing category, item_id or name.", nil)
			return
		}

		category, ok := models.ParseFavoriteCategory(body.Category)
		if !ok {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid category.", nil)
			return
		}

		// The favorited item has to exist in the catalog.
		collection, idField := category.CollectionFor()
		count, err := database.OpenCollection(collection).CountDocuments(ctx, bson.M{idField: body.ItemID})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if count == 0 {
			utils.Error(c, http.StatusNotFound, "Favorited item not found.", nil)
			return
		}

		userID := c.GetString("userID")
		favoritesCol := database.OpenCollection("favorites")

		exists, err := favoritesCol.CountDocuments(ctx, bson.M{
			"user_id":  userID,
			"category": category,
			"item_id":  body.ItemID,
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if exists > 0 {
			utils.Error(c, http.StatusConflict, "Favorite already exists.", nil)
			return
		}

		now := time.Now().UTC()
		favorite := models.Favorite{
			FavoriteID: uuid.New().String(),
			UserID:     userID,
			Category:   category,
			ItemID:     body.ItemID,
			Name:       name,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if _, err := favoritesCol.InsertOne(ctx, favorite); err != nil {
			if utils.IsDuplicateKey(err) {
				utils.Error(c, http.StatusConflict, "Favorite already exists.", nil)
				return
			}
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusCreated, gin.H{"favorite_id": favorite.FavoriteID}, "Favorite added successfully.")
	}
}

// DELETE /api/v1/favorites/remove-favorite/:id
func RemoveFavorite() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID := c.GetString("userID")
		favoritesCol := database.OpenCollection("favorites")

		// Scoping the filter by user makes someone else's favorite
		// indistinguishable from a missing one.
		res, err := favoritesCol.DeleteOne(ctx, bson.M{
			"favorite_id": c.Param("id"),
			"user_id":     userID,
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if res.DeletedCount == 0 {
			utils.Error(c, http.StatusNotFound, "Favorite not found.", nil)
			return
		}

		utils.JSON(c, http.StatusOK, nil, "Favorite removed successfully.")
	}
}
