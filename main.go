package main

import (
	"log"
	"os"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/sansad-info/parsers/filestorage"
	"github.com/sansad-info/parsers/pipeline"
)

func main() {
	basicAuthUserName := os.Getenv("USER_NAME")
	if basicAuthUserName == "" {
		log.Fatal("missing USER_NAME environment variables")
	}
	basicAuthPassword := os.Getenv("PASSWORD")
	if basicAuthPassword == "" {
		log.Fatal("missing PASSWORD environment variables")
	}
	bucket := os.Getenv("OUTPUT_BUCKET")
	if bucket == "" {
		log.Fatal("missing OUTPUT_BUCKET environment variables")
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	var storage filestorage.FileStorage
	switch os.Getenv("STORAGE") {
	case "gcs":
		storage = filestorage.NewGCSClient()
	case "s3":
		storage = filestorage.NewAWSClient()
	case "drive":
		credentials := os.Getenv("DRIVE_CREDENTIALS_FILE")
		oauthToken := os.Getenv("DRIVE_OAUTH_TOKEN_FILE")
		if credentials == "" || oauthToken == "" {
			log.Fatal("missing DRIVE_CREDENTIALS_FILE or DRIVE_OAUTH_TOKEN_FILE environment variables")
		}
		var err error
		storage, err = filestorage.NewGoogleDriveStorage(credentials, oauthToken)
		if err != nil {
			log.Fatalf("failed to create Google Drive client, error %q", err)
		}
	default:
		storage = filestorage.NewLocalStorage()
	}
	h := newHandler(pipeline.DefaultJobs(dataDir), storage, bucket)

	e := echo.New()
	e.Use(middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		return (username == basicAuthUserName && password == basicAuthPassword), nil
	}))
	e.POST("/parse", h.Post)
	e.GET("/parse", h.Get)
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("server online at ", port)
	log.Fatal(e.Start(":" + port))
}
