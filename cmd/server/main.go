package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/config"
	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/handler"
	"github.com/sahxzm/Dreamer/internal/router"
	"github.com/sahxzm/Dreamer/internal/storage"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化本地存储
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(storage.NewGormStore(gdb))

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
