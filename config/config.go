package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	Port          string
	MongoURI      string
	MongoDB       string
	JwtSecret     []byte
	AdminEmail    string
	AdminPassword string
	RedisAddr     string
	AWSRegion     string
	S3Bucket      string
	UploadDir     string
)

// Load reads environment variables (a .env file is honoured if present)
// and populates the package globals. Missing JWT_SECRET is fatal.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	Port = getenv("PORT", "4000")
	MongoURI = getenv("MONGO_URI", "mongodb://localhost:27017")
	MongoDB = getenv("MONGO_DB", "medibook")
	RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	AWSRegion = getenv("AWS_REGION", "us-east-1")
	S3Bucket = os.Getenv("S3_BUCKET") // empty means local uploads
	UploadDir = getenv("UPLOAD_DIR", "./static/uploads")

	JwtSecret = []byte(os.Getenv("JWT_SECRET"))
	if len(JwtSecret) == 0 {
		log.Fatal("JWT_SECRET must be set")
	}

	AdminEmail = os.Getenv("ADMIN_EMAIL")
	AdminPassword = os.Getenv("ADMIN_PASSWORD")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
