package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/horror-bot/internal/config"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/redis"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/sqlite"
)

// Finds turn records in Redis that are unreadable or belong to games that
// have ended or no longer exist, and offers to delete them.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx := context.Background()

	client, err := redis.Connect(ctx, cfg.RedisAddr, nil)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer func() { _ = client.Close() }()

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer func() { _ = db.Close() }()

	gameRepo, err := games.NewSQLiteRepository(&games.SQLiteConfig{DB: db})
	if err != nil {
		log.Fatal("Failed to create game repository:", err)
	}

	fmt.Println("Connected to Redis:", cfg.RedisAddr)
	fmt.Println("Scanning for stale turn records...")

	iter := client.Scan(ctx, 0, "turn:*", 0).Iterator()

	var staleKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var record entities.TurnRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			staleKeys = append(staleKeys, key)
			continue
		}

		gameID := strings.TrimPrefix(key, "turn:")
		got, err := gameRepo.Get(ctx, &games.GetInput{ID: gameID})
		switch {
		case errors.IsNotFound(err):
			fmt.Printf("✗ Unknown game for %s\n", key)
			staleKeys = append(staleKeys, key)
		case err != nil:
			fmt.Printf("Error loading game %s: %v\n", gameID, err)
		case !got.Game.Active:
			fmt.Printf("✗ Game ended for %s (turn %d)\n", key, record.Number)
			staleKeys = append(staleKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d stale entries\n", checkedCount, len(staleKeys))

	if len(staleKeys) == 0 {
		fmt.Println("Nothing to prune!")
		return
	}

	fmt.Println("\nStale keys:")
	for _, key := range staleKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range staleKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}
