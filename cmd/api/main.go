package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgpsi/clinic-scheduler/internal/config"
	dbpkg "github.com/vgpsi/clinic-scheduler/internal/db"
	"github.com/vgpsi/clinic-scheduler/internal/routes"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb, err := store.NewClient(cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	st := store.NewRedis(rdb)

	// feed de mudanças das coleções; clientes abertos ressincronizam a
	// partir destes eventos
	changes, closeSub, err := st.Subscribe(context.Background())
	if err != nil {
		log.Fatalf("failed to subscribe to change feed: %v", err)
	}
	defer closeSub()
	go func() {
		for col := range changes {
			log.Printf("collection changed: %s", col)
		}
	}()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, st, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
