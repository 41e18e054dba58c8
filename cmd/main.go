package main

import (
	"github.com/gin-gonic/gin"

	"CourseForge/internal/app"
	"CourseForge/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
