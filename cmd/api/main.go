package main

import (
	"context"
	"log"

	"github.com/carelink-app/carelink-backend/config"
	"github.com/carelink-app/carelink-backend/internal/auth"
	"github.com/carelink-app/carelink-backend/internal/bootstrap"
)

const (
	serviceName = "carelink-backend"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	firebase, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer firebase.Close()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	s3Client, presigner := bootstrap.OpenS3(cfg.Storage)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     version,
		Config:      cfg,
		DB:          db,
		Firebase:    firebase,
		Redis:       rdb,
		S3:          s3Client,
		S3Presigner: presigner,
	})

	log.Printf("%s %s listening on :%s", serviceName, version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
