package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/princinho/melodexbackend/auth"
	"github.com/princinho/melodexbackend/controllers"
	"github.com/princinho/melodexbackend/database"
	"github.com/princinho/melodexbackend/middleware"
	"github.com/princinho/melodexbackend/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedAdminUser(ctx, database.OpenCollection("users")); err != nil {
		log.Fatal(err)
	}

	// One registry and verifier shared by every request.
	blacklist := auth.NewBlacklist()
	verifier := auth.NewVerifier(utils.JWTSecret(), blacklist)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			if n := blacklist.Sweep(now); n > 0 {
				log.Printf("Blacklist sweep dropped %d expired tokens", n)
			}
		}
	}()

	r := gin.New()
	coverValidator := utils.NewCoverImageValidator()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	v1 := r.Group("/api/v1")

	v1.POST("/signup", controllers.Signup())
	v1.POST("/login", controllers.Login())

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(verifier))
	{
		authed.POST("/logout", controllers.Logout(verifier))
		authed.PUT("/users/update-password", controllers.UpdatePassword())

		authed.GET("/artists", controllers.GetArtists())
		authed.GET("/artists/:id", controllers.GetArtist())
		authed.GET("/albums", controllers.GetAlbums())
		authed.GET("/albums/:id", controllers.GetAlbum())
		authed.GET("/tracks", controllers.GetTracks())
		authed.GET("/tracks/:id", controllers.GetTrack())

		authed.GET("/favorites/:category", controllers.GetFavorites())
		authed.POST("/favorites/add-favorite", controllers.AddFavorite())
		authed.DELETE("/favorites/remove-favorite/:id", controllers.RemoveFavorite())
	}

	editors := authed.Group("")
	editors.Use(middleware.RequirePermission(auth.CanManageCatalog))
	{
		editors.POST("/artists/add-artist", controllers.AddArtist())
		editors.PUT("/artists/:id", controllers.UpdateArtist())
		editors.DELETE("/artists/:id", controllers.DeleteArtist())

		editors.POST("/albums/add-album", controllers.AddAlbums())
		editors.PUT("/albums/:id", controllers.UpdateAlbum())
		editors.DELETE("/albums/:id", controllers.DeleteAlbum())
		editors.POST("/albums/:id/cover", controllers.UploadAlbumCover(coverValidator))

		editors.POST("/tracks/add-track", controllers.AddTrack())
		editors.PUT("/tracks/:id", controllers.UpdateTrack())
		editors.DELETE("/tracks/:id", controllers.DeleteTrack())
	}

	admins := authed.Group("")
	admins.Use(middleware.RequirePermission(auth.CanManageUsers))
	{
		admins.GET("/users", controllers.GetUsers())
		admins.POST("/users/add-user", controllers.AddUser())
		admins.DELETE("/users/:id", controllers.DeleteUser())
	}

	// Server listens on PORT, 8080 by default
	r.Run()
}
