package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/doublestrike/puzzle-backend/internal/api"
	"github.com/doublestrike/puzzle-backend/internal/config"
	"github.com/doublestrike/puzzle-backend/internal/dao"
	"github.com/doublestrike/puzzle-backend/internal/db"
	"github.com/doublestrike/puzzle-backend/internal/pregen"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		panic(err)
	}

	dbClient, err := db.NewDbClient(cfg.Database.Address, cfg.Database.DatabaseName, cfg.Database.Collection)
	if err != nil {
		panic(err)
	}
	defer dbClient.Close()

	puzzleRepo := dao.NewPuzzleRepository(dbClient)
	batchFactory := pregen.NewBatchFactory(puzzleRepo, nil)
	puzzleApi := api.NewPuzzleApi(puzzleRepo, batchFactory)

	r := gin.Default()
	r.GET("/api/puzzle", puzzleApi.Puzzle)
	r.GET("/api/puzzle/stored", puzzleApi.StoredPuzzle)
	r.GET("/api/puzzle/recent", puzzleApi.RecentPuzzles)
	r.POST("/api/jobs", puzzleApi.StartJob)
	r.GET("/api/jobs/:job_id", puzzleApi.JobStatus)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		panic(err)
	}
}
