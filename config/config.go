package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS  = ""             // e.g. "example.com,example2.com"
	BIND_ADDRESS = "0.0.0.0:8080" // used when TLS_DOMAINS is empty
	DEBUG_MODE   = true
	SESSION_KEY  = ""
	// Database - the first non-empty DSN wins, in this order
	MYSQL_DSN    = ""
	POSTGRES_DSN = ""
	SQLITE_FILE  = "blog.db"
	// Feeds
	MAX_POSTS          = 10 // posts per page
	FEED_CACHE_SECONDS = 20 // lifetime of a cached global feed page
	// Media. S3 will be used if S3_BUCKET is set, MEDIA_DIR otherwise
	MEDIA_DIR     = "media"
	THUMB_SIZE    = 640
	S3_BUCKET     = ""
	S3_REGION     = "us-east-1"
	S3_ENDPOINT   = "" // for S3 compatible services
	S3_ACCESS_KEY = ""
	S3_SECRET     = ""
	S3_PREFIX     = ""
	// Live events. Without NSQD_ADDR events are delivered to this instance only
	NSQD_ADDR   = ""
	NSQ_TOPIC   = "posts"
	INSTANCE_ID = "blog"
	// Initial admin account, created on startup if missing
	ADMIN_USERNAME = ""
	ADMIN_PASSWORD = ""
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvInt("MAX_POSTS", &MAX_POSTS)
	readEnvInt("FEED_CACHE_SECONDS", &FEED_CACHE_SECONDS)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_ACCESS_KEY", &S3_ACCESS_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("NSQD_ADDR", &NSQD_ADDR)
	readEnvString("NSQ_TOPIC", &NSQ_TOPIC)
	readEnvString("INSTANCE_ID", &INSTANCE_ID)
	readEnvString("ADMIN_USERNAME", &ADMIN_USERNAME)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
