package main

import (
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"

	"github.com/doublestrike/puzzle-backend/internal/config"
	"github.com/doublestrike/puzzle-backend/internal/dao"
	"github.com/doublestrike/puzzle-backend/internal/db"
	"github.com/doublestrike/puzzle-backend/internal/pregen"
	"github.com/doublestrike/puzzle-backend/pkg/puzgen"
)

func main() {
	cfg, err := config.InitPregenConfig()
	if err != nil {
		panic(err)
	}

	weights := puzgen.DefaultWeights
	if cfg.Batch.WeightsPath != "" {
		weights, err = loadWeights(cfg.Batch.WeightsPath)
		if err != nil {
			panic(err)
		}
	}

	dbClient, err := db.NewDbClient(cfg.Database.Address, cfg.Database.DatabaseName, cfg.Database.Collection)
	if err != nil {
		panic(err)
	}
	defer dbClient.Close()

	puzzleRepo := dao.NewPuzzleRepository(dbClient)
	factory := pregen.NewBatchFactory(puzzleRepo, weights)

	for pieces := cfg.Batch.MinPieces; pieces <= cfg.Batch.MaxPieces; pieces++ {
		worker := factory.CreateBatch(pieces, cfg.Batch.CountPerSize)
		worker.Run()
		if err := worker.Error(); err != nil {
			log.Printf("batch for %d pieces failed: %v", pieces, err)
			continue
		}
		log.Printf("finished batch of %d puzzles with %d pieces", cfg.Batch.CountPerSize, pieces)
	}
}

func loadWeights(path string) (puzgen.WeightTable, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var weightCfg puzgen.WeightConfig
	if err := yaml.Unmarshal(raw, &weightCfg); err != nil {
		return nil, err
	}
	return weightCfg.Table(), nil
}
