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
)

// POST /api/v1/signup
func Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.SignupDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request, Reason: Invalid body", err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		if email == "" || body.Password == "" {
			missing := "email"
			if email != "" {
				missing = "password"
			}
			utils.Error(c, http.StatusBadRequest, "Bad Request, Reason: Missing "+missing, nil)
			return
		}

		usersCol := database.OpenCollection("users")

		count, err := usersCol.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		if count > 0 {
			utils.Error(c, http.StatusConflict, "Email already exists.", nil)
			return
		}

		// The first account ever created becomes the admin.
		total, err := usersCol.CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}
		role := auth.RoleViewer
		if total == 0 {
			role = auth.RoleAdmin
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
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
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusCreated, nil, "User created successfully.")
	}
}

// POST /api/v1/login
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.Error(c, http.StatusBadRequest, "Bad Request, Reason: Invalid body", err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		if email == "" || body.Password == "" {
			utils.Error(c, http.StatusBadRequest, "Bad Request, Reason: Missing Fields", nil)
			return
		}

		usersCol := database.OpenCollection("users")

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			utils.Error(c, http.StatusNotFound, "User not found.", nil)
			return
		}

		if err := utils.CheckPassword(user.Password, body.Password); err != nil {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized: Invalid Credentials", nil)
			return
		}

		token, err := auth.GenerateToken(user.UserID, user.Email, string(user.Role), utils.JWTSecret(), utils.AccessTTL())
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal Server Error.", err.Error())
			return
		}

		utils.JSON(c, http.StatusOK, gin.H{"token": token}, "Login successful.")
	}
}

// POST /api/v1/logout
//
// The presented token is added to the revocation registry; it stays rejected
// until its natural expiry even though its signature would still verify.
func Logout(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("token")
		if token != "" {
			v.Invalidate(token)
		}
		utils.JSON(c, http.StatusOK, nil, "User logged out successfully.")
	}
}
