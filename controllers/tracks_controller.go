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

// GET /api/v1/tracks
func GetTracks() gin.HandlerFunc {
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
		if albumID := strings.TrimSpace(c.Query("album_id")); albumID != "" {
			filter["album_id"] = albumID
		}
		if b, err := utils.ParseBoolQuery(c.Query("hidden")); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid hidden filter.", nil)
			return
		} else if b != nil {
			filter["hidden"] = *b
		}

		tracksCol := database.OpenCollection("tracks")

		opts := options.Find().
			SetSkip(offset).
			SetLimit(limit).
			SetSort(bson.D{{Key: "name", Value: 1}})

		cursor, err := tracksCol.Find(ctx, filter, opts)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		defer cursor.Close(ctx)

		tracks := make([]models.Track, 0)
		for cursor.Next(ctx) {
			var tr models.Track
			if err := cursor.Decode(&tr); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
				return
			}
			tracks = append(tracks, tr)
		}
		if err := cursor.Err(); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, tracks, "Tracks retrieved successfully.")
	}
}

// GET /api/v1/tracks/:id
func GetTrack() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tracksCol := database.OpenCollection("tracks")

		var track models.Track
		if err := tracksCol.FindOne(ctx, bson.M{"track_id": c.Param("id")}).Decode(&track); err != nil {
			utils.Error(c, http.StatusNotFound, "Track not found.", nil)
			return
		}

		utils.JSON(c, http.StatusOK, track, "Track retrieved successfully.")
	}
}

// POST /api/v1/tracks/add-track  (Editor/Admin)
func AddTrack() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateTrackDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid body.", err.Error())
			return
		}

		name := strings.TrimSpace(body.Name)
		if body.ArtistID == "" || body.AlbumID == "" || name == "" || body.Duration <= 0 {
			utils.Error(c, http.StatusBadRequest,
				"Bad Request: artist_id, album_id, name and a positive duration are required.", nil)
			return
		}

		// The album must exist and belong to the given artist.
		albumsCol := database.OpenCollection("albums")
		var album models.Album
		if err := albumsCol.FindOne(ctx, bson.M{"album_id": body.AlbumID}).Decode(&album); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Album not found.", nil)
			return
		}
		if album.ArtistID != body.ArtistID {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Album does not belong to the given artist.", nil)
			return
		}

		now := time.Now().UTC()
		track := models.Track{
			TrackID:   uuid.New().String(),
			ArtistID:  body.ArtistID,
			AlbumID:   body.AlbumID,
			Name:      name,
			Duration:  body.Duration,
			Hidden:    body.Hidden,
			CreatedAt: now,
			UpdatedAt: now,
		}

		tracksCol := database.OpenCollection("tracks")
		if _, err := tracksCol.InsertOne(ctx, track); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusCreated, gin.H{"track_id": track.TrackID}, "Track created successfully.")
	}
}

// PUT /api/v1/tracks/:id  (Editor/Admin)
func UpdateTrack() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.UpdateTrackDTO
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
		if body.Duration != nil {
			if *body.Duration <= 0 {
				utils.Error(c, http.StatusBadRequest, "Bad Request: duration must be positive.", nil)
				return
			}
			set["duration"] = *body.Duration
		}
		if body.Hidden != nil {
			set["hidden"] = *body.Hidden
		}
		if len(set) == 0 {
			utils.Error(c, http.StatusBadRequest, "Bad Request: No updates provided.", nil)
			return
		}
		set["updatedAt"] = time.Now().UTC()

		tracksCol := database.OpenCollection("tracks")
		res, err := tracksCol.UpdateOne(ctx, bson.M{"track_id": c.Param("id")}, bson.M{"$set": set})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Error(c, http.StatusNotFound, "Track not found.", nil)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// DELETE /api/v1/tracks/:id  (Editor/Admin)
func DeleteTrack() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		trackID := c.Param("id")

		tracksCol := database.OpenCollection("tracks")

		var track models.Track
		if err := tracksCol.FindOne(ctx, bson.M{"track_id": trackID}).Decode(&track); err != nil {
			utils.Error(c, http.StatusNotFound, "Track not found.", nil)
			return
		}

		if _, err := tracksCol.DeleteOne(ctx, bson.M{"track_id": trackID}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, gin.H{"track_id": trackID},
			"Track: "+track.Name+" deleted successfully.")
	}
}
