package main

import (
	"log"

	"github.com/restopos/ticket-engine/config"
	"github.com/restopos/ticket-engine/database"
	"github.com/restopos/ticket-engine/router"
	"github.com/restopos/ticket-engine/services"
	"github.com/restopos/ticket-engine/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	services.SetShopInfo(services.ShopInfo{
		Name:    cfg.Shop.Name,
		Address: cfg.Shop.Address,
		City:    cfg.Shop.City,
		Phone:   cfg.Shop.Phone,
	})

	db, err := database.Init(cfg.DB)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	r := router.SetupRouter(db)

	utils.InfoLogger.Printf("ticket engine listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
