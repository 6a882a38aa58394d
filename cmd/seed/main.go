// Command seed loads demo polls from a JSON fixture file into the database,
// optionally casting a few synthetic votes so results pages render non-empty.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/RuchaTekade/polling-app/internal/config"
	"github.com/RuchaTekade/polling-app/internal/repository"
	"github.com/RuchaTekade/polling-app/internal/store"
)

type pollFixture struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
	IsPublic    *bool    `json:"is_public"`
}

func main() {
	var (
		data      = flag.String("data", "seed-polls.json", "path to poll fixture file")
		withVotes = flag.Bool("votes", false, "cast random demo votes on each poll")
	)
	flag.Parse()

	payload, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read fixture data: %v", err)
	}

	var fixtures []pollFixture
	if err := json.Unmarshal(payload, &fixtures); err != nil {
		log.Fatalf("parse fixture data: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[polls-seed] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DBURL, store.Options{
		MaxConns:    2,
		ConnTimeout: time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, fixture := range fixtures {
		isPublic := true
		if fixture.IsPublic != nil {
			isPublic = *fixture.IsPublic
		}

		poll, options, err := repo.Polls.Create(ctx, repository.PollCreateParams{
			Title:       fixture.Title,
			Description: fixture.Description,
			OptionTexts: fixture.Options,
			IsPublic:    isPublic,
		})
		if err != nil {
			log.Fatalf("create poll %q: %v", fixture.Title, err)
		}
		logger.Printf("created poll %s (%q, %d options)", poll.ID, poll.Title, len(options))

		if !*withVotes || len(options) == 0 {
			continue
		}
		voters := 3 + rnd.Intn(10)
		for i := 0; i < voters; i++ {
			option := options[rnd.Intn(len(options))]
			_, _, err := repo.Votes.Upsert(ctx, repository.VoteUpsertParams{
				PollID:   poll.ID,
				OptionID: option.ID,
				VoterID:  uuid.NewString(),
			})
			if err != nil {
				log.Fatalf("seed vote on %q: %v", poll.Title, err)
			}
		}
		logger.Printf("cast %d demo votes on %q", voters, poll.Title)
	}
}
