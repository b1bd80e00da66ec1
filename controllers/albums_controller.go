package controllers

import (
	"fmt"
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

// GET /api/v1/albums
func GetAlbums() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		limit, offset, err := utils.ParseLimitOffset(c.Query("limit"), c.Query("offset"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid limit or offset.", err.Error())
			return
		}

		filter := bson.M{}
		if artistID := strings.TrimSpace(c.Query("artist_id")); artistID != "" {
			filter["artist_id"] = artistID
		}
		if b, err := utils.ParseBoolQuery(c.Query("hidden")); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid hidden filter.", nil)
			return
		} else if b != nil {
			filter["hidden"] = *b
		}

		albumsCol := database.OpenCollection("albums")

		opts := options.Find().
			SetSkip(offset).
			SetLimit(limit).
			SetSort(bson.D{{Key: "year", Value: 1}, {Key: "name", Value: 1}})

		cursor, err := albumsCol.Find(ctx, filter, opts)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		defer cursor.Close(ctx)

		albums := make([]models.Album, 0)
		for cursor.Next(ctx) {
			var a models.Album
			if err := cursor.Decode(&a); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
				return
			}
			albums = append(albums, a)
		}
		if err := cursor.Err(); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, albums, "Albums retrieved successfully.")
	}
}

// GET /api/v1/albums/:id
func GetAlbum() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		albumsCol := database.OpenCollection("albums")

		var album models.Album
		if err := albumsCol.FindOne(ctx, bson.M{"album_id": c.Param("id")}).Decode(&album); err != nil {
			utils.Error(c, http.StatusNotFound, "Album not found.", nil)
			return
		}

		utils.JSON(c, http.StatusOK, album, "Album retrieved successfully.")
	}
}

// POST /api/v1/albums/add-album  (Editor/Admin)
//
// Accepts a batch. Items are validated up front; when any item fails, the
// whole request is rejected with a per-item error list and nothing is
// written.
func AddAlbums() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateAlbumsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: No albums provided or invalid format.", err.Error())
			return
		}
		if len(body.Albums) == 0 {
			utils.Error(c, http.StatusBadRequest, "Bad Request: No albums provided or invalid format.", nil)
			return
		}

		artistsCol := database.OpenCollection("artists")

		validationErrors := make([]utils.ValidationError, 0)
		now := time.Now().UTC()
		docs := make([]interface{}, 0, len(body.Albums))
		created := make([]models.Album, 0, len(body.Albums))

		for i, item := range body.Albums {
			name := strings.TrimSpace(item.Name)
			switch {
			case item.ArtistID == "" || name == "" || item.Year == 0:
				validationErrors = append(validationErrors, utils.ValidationError{
					Index: i,
					Error: "Missing required fields: artist_id, name, or year.",
				})
				continue
			case item.Year < 1900 || item.Year > now.Year()+1:
				validationErrors = append(validationErrors, utils.ValidationError{
					Index: i,
					Error: fmt.Sprintf("Invalid year %d.", item.Year),
				})
				continue
			}

			count, err := artistsCol.CountDocuments(ctx, bson.M{"artist_id": item.ArtistID})
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
				return
			}
			if count == 0 {
				validationErrors = append(validationErrors, utils.ValidationError{
					Index: i,
					Error: "Artist not found: " + item.ArtistID,
				})
				continue
			}

			album := models.Album{
				AlbumID:   uuid.New().String(),
				ArtistID:  item.ArtistID,
				Name:      name,
				Year:      item.Year,
				Hidden:    item.Hidden,
				CreatedAt: now,
				UpdatedAt: now,
			}
			docs = append(docs, album)
			created = append(created, album)
		}

		if len(validationErrors) > 0 {
			utils.Error(c, http.StatusBadRequest, "Some albums have validation errors.", validationErrors)
			return
		}

		albumsCol := database.OpenCollection("albums")
		if _, err := albumsCol.InsertMany(ctx, docs); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusCreated, created,
			fmt.Sprintf("%d albums created successfully.", len(created)))
	}
}

// PUT /api/v1/albums/:id  (Editor/Admin)
func UpdateAlbum() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.UpdateAlbumDTO
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
		}
		if body.Year != nil {
			if *body.Year < 1900 || *body.Year > time.Now().Year()+1 {
				utils.Error(c, http.StatusBadRequest, fmt.Sprintf("Bad Request: Invalid year %d.", *body.Year), nil)
				return
			}
			set["year"] = *body.Year
		}
		if body.Hidden != nil {
			set["hidden"] = *body.Hidden
		}
		if len(set) == 0 {
			utils.Error(c, http.StatusBadRequest, "Bad Request: No updates provided.", nil)
			return
		}
		set["updatedAt"] = time.Now().UTC()

		albumsCol := database.OpenCollection("albums")
		res, err := albumsCol.UpdateOne(ctx, bson.M{"album_id": c.Param("id")}, bson.M{"$set": set})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Error(c, http.StatusNotFound, "Album not found.", nil)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// DELETE /api/v1/albums/:id  (Editor/Admin)
func DeleteAlbum() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		albumID := c.Param("id")

		albumsCol := database.OpenCollection("albums")

		var album models.Album
		if err := albumsCol.FindOne(ctx, bson.M{"album_id": albumID}).Decode(&album); err != nil {
			utils.Error(c, http.StatusNotFound, "Album not found.", nil)
			return
		}

		if _, err := albumsCol.DeleteOne(ctx, bson.M{"album_id": albumID}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		// Orphaned cover art has no page left to show it on.
		if album.CoverURL != "" {
			if client, bucket, err := utils.NewGCSClient(c); err == nil {
				defer client.Close()
				if objectName, err := utils.ObjectNameFromGCSPublicURL(bucket, album.CoverURL); err == nil {
					_ = utils.DeleteGCSObject(ctx, client, bucket, objectName)
				}
			}
		}

		utils.JSON(c, http.StatusOK, gin.H{"album_id": albumID},
			"Album: "+album.Name+" deleted successfully.")
	}
}

// POST /api/v1/albums/:id/cover  (Editor/Admin)
func UploadAlbumCover(v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		albumID := c.Param("id")

		albumsCol := database.OpenCollection("albums")

		var album models.Album
		if err := albumsCol.FindOne(ctx, bson.M{"album_id": albumID}).Decode(&album); err != nil {
			utils.Error(c, http.StatusNotFound, "Album not found.", nil)
			return
		}

		fileHeader, err := c.FormFile("cover")
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Missing 'cover' file.", err.Error())
			return
		}
		if _, err := v.ValidateFile(fileHeader); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid cover file.", err.Error())
			return
		}

		client, bucket, err := utils.NewGCSClient(c)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", "Failed to create storage client")
			return
		}
		defer client.Close()

		publicURL, _, err := utils.UploadCoverToGCS(ctx, client, bucket, albumID, fileHeader)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		_, err = albumsCol.UpdateOne(ctx, bson.M{"album_id": albumID}, bson.M{
			"$set": bson.M{
				"coverUrl":  publicURL,
				"updatedAt": time.Now().UTC(),
			},
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		// Best effort removal of the replaced object.
		if album.CoverURL != "" {
			if objectName, err := utils.ObjectNameFromGCSPublicURL(bucket, album.CoverURL); err == nil {
				_ = utils.DeleteGCSObject(ctx, client, bucket, objectName)
			}
		}

		utils.JSON(c, http.StatusOK, gin.H{"cover_url": publicURL}, "Album cover updated successfully.")
	}
}
