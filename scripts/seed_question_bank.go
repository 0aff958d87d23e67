// 导入本地开发用的题库、试卷与学生分配
//
// 用法: go run scripts/seed_question_bank.go -file configs/seed/sample_bank.yaml

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Env1sage/LMS-MED-sub001/internal/config"
	"github.com/Env1sage/LMS-MED-sub001/internal/seed"
	"github.com/Env1sage/LMS-MED-sub001/pkg/database"
	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	file := flag.String("file", "configs/seed/sample_bank.yaml", "question bank to load")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}
	bank, err := seed.Parse(data)
	if err != nil {
		log.Fatalf("Invalid question bank: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	res, err := seed.Load(context.Background(), db, bank)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	for title, id := range res.TestIDs {
		logger.Log.Info("Seeded test", zap.String("title", title), zap.String("id", id))
	}
	logger.Log.Info("Seeding finished", zap.Int("questions", len(res.MCQIDs)), zap.Int("tests", len(res.TestIDs)))
}
