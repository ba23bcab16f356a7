package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"agridata/config"
	"agridata/controllers"
	"agridata/middlewares"
	"agridata/store"
)

func main() {
	cfg := config.LoadServer()

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := st.Migrate(); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	r := gin.Default()
	r.Use(middlewares.CORS())
	controllers.RegisterRoutes(r, controllers.NewHandler(st))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
