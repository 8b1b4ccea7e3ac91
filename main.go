package main

import (
	"blog/config"
	"blog/db"
	"blog/events"
	"blog/handlers"
	"blog/models"
	"blog/storage"
	"blog/utils"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

// sessionSecret signs session cookies, a random one is generated when SESSION_KEY is not set
func sessionSecret() []byte {
	if config.SESSION_KEY != "" {
		return []byte(config.SESSION_KEY)
	}
	log.Println("SESSION_KEY is not set, sessions will not survive a restart")
	return []byte(utils.Rand16BytesToBase62())
}

func main() {
	db.Init()
	models.Init()
	if config.ADMIN_USERNAME != "" {
		if err := models.EnsureAdmin(config.ADMIN_USERNAME, config.ADMIN_PASSWORD); err != nil {
			log.Fatalf("Admin account: %v", err)
		}
	}
	storage.Init()
	events.Init()
	defer events.Stop()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	sessionStore := gormsessions.NewStore(db.Instance, true, sessionSecret())
	sessionStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media", "/ws"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	handlers.SetupRoutes(router)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
