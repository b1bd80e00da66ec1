package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/melodexbackend/auth"
	"github.com/princinho/melodexbackend/database"
	"github.com/princinho/melodexbackend/dto"
	"github.com/princinho/melodexbackend/models"
	"github.com/princinho/melodexbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func requesterRole(c *gin.Context) (auth.Role, bool) {
	role, err := auth.ParseRole(c.GetString("role"))
	if err != nil {
		return "", false
	}
	return role, true
}

// GET /api/v1/users  (Admin)
func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		limit, offset, err := utils.ParseLimitOffset(c.Query("limit"), c.Query("offset"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid limit or offset.", err.Error())
			return
		}

		filter := bson.M{}
		if roleStr := c.Query("role"); roleStr != "" {
			role, err := auth.ParseRole(roleStr)
			if err != nil {
				utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid role filter.", err.Error())
				return
			}
			filter["role"] = role
		}

		usersCol := database.OpenCollection("users")

		opts := options.Find().
			SetSkip(offset).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: 1}})

		cursor, err := usersCol.Find(ctx, filter, opts)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		for cursor.Next(ctx) {
			var u models.User
			if err := cursor.Decode(&u); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
				return
			}
			users = append(users, u)
		}
		if err := cursor.Err(); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, users, "Users retrieved successfully.")
	}
}

// POST /api/v1/users/add-user  (Admin)
func AddUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.AddUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid body.", err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		if email == "" || body.Password == "" || body.Role == "" {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Missing fields.", nil)
			return
		}

		// Admin can never be requested, in any spelling.
		if strings.EqualFold(body.Role, string(auth.RoleAdmin)) {
			utils.Error(c, http.StatusForbidden, "Forbidden Access: Cannot assign 'admin' role.", nil)
			return
		}
		role, err := auth.AssignableRole(body.Role)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid role.", err.Error())
			return
		}

		usersCol := database.OpenCollection("users")

		count, err := usersCol.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}
		if count > 0 {
			utils.Error(c, http.StatusConflict, "Email already exists.", nil)
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}

		now := time.Now().UTC()
		user := models.User{
			UserID:    uuid.New().String(),
			Email:     email,
			Password:  hash,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := usersCol.InsertOne(ctx, user); err != nil {
			if utils.IsDuplicateKey(err) {
				utils.Error(c, http.StatusConflict, "Email already exists.", nil)
				return
			}
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}

		utils.JSON(c, http.StatusCreated, nil, "User created successfully.")
	}
}

// DELETE /api/v1/users/:id  (Admin)
func DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		targetID := c.Param("id")

		role, ok := requesterRole(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized Access", nil)
			return
		}
		requesterID := c.GetString("userID")

		usersCol := database.OpenCollection("users")

		var target models.User
		if err := usersCol.FindOne(ctx, bson.M{"user_id": targetID}).Decode(&target); err != nil {
			utils.Error(c, http.StatusNotFound, "User not found.", nil)
			return
		}

		if !auth.CanDeleteUser(role, requesterID, target.Role, target.UserID) {
			utils.Error(c, http.StatusForbidden, "Forbidden Access: Cannot delete another admin.", nil)
			return
		}

		if _, err := usersCol.DeleteOne(ctx, bson.M{"user_id": targetID}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}

		// Their favorites are meaningless without the account.
		favoritesCol := database.OpenCollection("favorites")
		_, _ = favoritesCol.DeleteMany(ctx, bson.M{"user_id": targetID})

		utils.JSON(c, http.StatusOK, nil, "User deleted successfully.")
	}
}

// PUT /api/v1/users/update-password
func UpdatePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.UpdatePasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Invalid body.", err.Error())
			return
		}
		if body.OldPassword == "" || body.NewPassword == "" {
			utils.Error(c, http.StatusBadRequest, "Bad Request: Missing old or new password.", nil)
			return
		}

		userID := c.GetString("userID")
		usersCol := database.OpenCollection("users")

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
			utils.Error(c, http.StatusNotFound, "User not found.", nil)
			return
		}

		if err := utils.CheckPassword(user.Password, body.OldPassword); err != nil {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized Access: Incorrect old password.", nil)
			return
		}

		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}

		now := time.Now().UTC()
		_, err = usersCol.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
			"$set": bson.M{
				"password":  hash,
				"updatedAt": now,
			},
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}

		c.Status(http.StatusNoContent)
	}
}
