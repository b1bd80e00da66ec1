package controllers

import (
	"net/http"
	"strconv"
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

// GET /api/v1/artists
func GetArtists() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		limit, offset, err := utils.ParseLimitOffset(c.Query("limit"), c.Query("offset"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid limit or offset.", err.Error())
			return
		}

		filter := bson.M{}
		if grammyStr := c.Query("grammy"); grammyStr != "" {
			grammy, err := strconv.Atoi(grammyStr)
			if err != nil || grammy < 0 {
				utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid grammy filter.", nil)
				return
			}
			filter["grammy"] = grammy
		}
		if b, err := utils.ParseBoolQuery(c.Query("hidden")); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid hidden filter.", nil)
			return
		} else if b != nil {
			filter["hidden"] = *b
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			filter["nameFolded"] = bson.M{"$regex": utils.SearchRegex(q)}
		}

		artistsCol := database.OpenCollection("artists")

		opts := options.Find().
			SetSkip(offset).
			SetLimit(limit).
			SetSort(bson.D{{Key: "name", Value: 1}})

		cursor, err := artistsCol.Find(ctx, filter, opts)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		defer cursor.Close(ctx)

		artists := make([]models.Artist, 0)
		for cursor.Next(ctx) {
			var a models.Artist
			if err := cursor.Decode(&a); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
				return
			}
			artists = append(artists, a)
		}
		if err := cursor.Err(); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, artists, "Artists retrieved successfully.")
	}
}

// GET /api/v1/artists/:id
func GetArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		artistsCol := database.OpenCollection("artists")

		var artist models.Artist
		if err := artistsCol.FindOne(ctx, bson.M{"artist_id": c.Param("id")}).Decode(&artist); err != nil {
			utils.Error(c, http.StatusNotFound, "Artist not found.", nil)
			return
		}

		utils.JSON(c, http.StatusOK, artist, "Artist retrieved successfully.")
	}
}

// POST /api/v1/artists/add-artist  (Editor/Admin)
func AddArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateArtistDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: 'name' is required and 'grammy' must be >= 0.", err.Error())
			return
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			utils.Error(c, http.StatusBadRequest, "Bad Request: 'name' is required.", nil)
			return
		}

		now := time.Now().UTC()
		artist := models.Artist{
			ArtistID:   uuid.New().String(),
			Name:       name,
			NameFolded: utils.FoldName(name),
			Grammy:     body.Grammy,
			Hidden:     body.Hidden,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		artistsCol := database.OpenCollection("artists")
		if _, err := artistsCol.InsertOne(ctx, artist); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusCreated, gin.H{"artist_id": artist.ArtistID}, "Artist created successfully.")
	}
}

// PUT /api/v1/artists/:id  (Editor/Admin)
func UpdateArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.UpdateArtistDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid body.", err.Error())
			return
		}

		set := bson.M{}
		if body.Name != nil {
			v := strings.TrimSpace(*body.Name)
			if v == "" {
				utils.Error(c, http.StatusBadRequest, "Bad Request: name cannot be empty.", nil)
				return
			}
			set["name"] = v
			set["nameFolded"] = utils.FoldName(v)
		}
		if body.Grammy != nil {
			if *body.Grammy < 0 {
				utils.Error(c, http.StatusBadRequest, "Bad Request: grammy cannot be negative.", nil)
				return
			}
			set["grammy"] = *body.Grammy
		}
		if body.Hidden != nil {
			set["hidden"] = *body.Hidden
		}
		if len(set) == 0 {
			utils.Error(c, http.StatusBadRequest, "Bad Request: No updates provided.", nil)
			return
		}
		set["updatedAt"] = time.Now().UTC()

		artistsCol := database.OpenCollection("artists")
		res, err := artistsCol.UpdateOne(ctx, bson.M{"artist_id": c.Param("id")}, bson.M{"$set": set})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Error(c, http.StatusNotFound, "Artist not found.", nil)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// DELETE /api/v1/artists/:id  (Editor/Admin)
func DeleteArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		artistID := c.Param("id")

		artistsCol := database.OpenCollection("artists")

		var artist models.Artist
		if err := artistsCol.FindOne(ctx, bson.M{"artist_id": artistID}).Decode(&artist); err != nil {
			utils.Error(c, http.StatusNotFound, "Artist not found.", nil)
			return
		}

		if _, err := artistsCol.DeleteOne(ctx, bson.M{"artist_id": artistID}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, gin.H{"artist_id": artistID},
			"Artist: "+artist.Name+" deleted successfully.")
	}
}
