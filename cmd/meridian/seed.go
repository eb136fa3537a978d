package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"meridian-hq/callisto/pkg/cli"
	"meridian-hq/callisto/pkg/study"
	"meridian-hq/callisto/pkg/telemetry/logging"
)

var seedFlags struct {
	games   int
	players int
	rounds  int
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demonstration study data into the store",
	Long: `Load a small synthetic study into the configured storage backend:
a factor design, one batch of games, and per-player round and stage
records with data payloads. Useful for trying the export endpoint
against non-empty collections.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedFlags.games, "games", 3, "number of games")
	seedCmd.Flags().IntVar(&seedFlags.players, "players", 4, "players per game")
	seedCmd.Flags().IntVar(&seedFlags.rounds, "rounds", 5, "rounds per game")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := logging.Setup(logging.Config{
		Level:  "warn",
		Format: cfg.Telemetry.Logging.Format,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()
	s := &seeder{store: store, now: time.Now().UTC().Add(-24 * time.Hour)}

	if err := s.run(ctx); err != nil {
		return cli.NewCommandError("seed", err)
	}

	fmt.Printf("✓ Seeded %d records into %s storage\n", s.count, cfg.Storage.Backend)
	return nil
}

// seeder writes one synthetic study. Timestamps advance a little with
// every record so the stable scan order is visible in exports.
type seeder struct {
	store study.Storage
	now   time.Time
	count int
}

func (s *seeder) put(ctx context.Context, collection string, fields, data map[string]any) (string, error) {
	id := uuid.NewString()
	s.now = s.now.Add(time.Duration(1+rand.Intn(30)) * time.Second)
	err := s.store.Put(ctx, collection, &study.Record{
		ID:        id,
		CreatedAt: s.now,
		Fields:    fields,
		Data:      data,
	})
	if err != nil {
		return "", err
	}
	s.count++
	return id, nil
}

func (s *seeder) run(ctx context.Context) error {
	factorTypeID, err := s.put(ctx, "factor-types", map[string]any{
		"name":        "playerCount",
		"required":    true,
		"description": "Number of players in a game",
		"type":        "Integer",
		"min":         1,
		"max":         32,
	}, nil)
	if err != nil {
		return err
	}

	factorID, err := s.put(ctx, "factors", map[string]any{
		"name":         fmt.Sprintf("playerCount %d", seedFlags.players),
		"value":        seedFlags.players,
		"factorTypeId": factorTypeID,
	}, nil)
	if err != nil {
		return err
	}

	treatmentID, err := s.put(ctx, "treatments", map[string]any{
		"name":      fmt.Sprintf("%d players", seedFlags.players),
		"factorIds": []string{factorID},
	}, nil)
	if err != nil {
		return err
	}

	lobbyConfigID, err := s.put(ctx, "lobby-configs", map[string]any{
		"name":             "default",
		"timeoutType":      "lobby",
		"timeoutInSeconds": 300,
		"timeoutStrategy":  "fail",
		"timeoutBots":      false,
		"extendCount":      1,
	}, nil)
	if err != nil {
		return err
	}

	batchID, err := s.put(ctx, "batches", map[string]any{
		"assignment": "complete",
		"full":       false,
		"runningAt":  s.now,
		"status":     "running",
	}, nil)
	if err != nil {
		return err
	}

	for g := 0; g < seedFlags.games; g++ {
		if err := s.seedGame(ctx, g, batchID, treatmentID, lobbyConfigID); err != nil {
			return err
		}
	}

	return nil
}

func (s *seeder) seedGame(ctx context.Context, index int, batchID, treatmentID, lobbyConfigID string) error {
	gameID := uuid.NewString()

	playerIDs := make([]string, 0, seedFlags.players)
	for p := 0; p < seedFlags.players; p++ {
		id, err := s.put(ctx, "players", map[string]any{
			"playerId": fmt.Sprintf("participant-%d-%d", index, p),
			"bot":      false,
			"readyAt":  s.now,
		}, map[string]any{
			"avatar": fmt.Sprintf("avatar-%d", p),
		})
		if err != nil {
			return err
		}
		playerIDs = append(playerIDs, id)
	}

	_, err := s.put(ctx, "game-lobbies", map[string]any{
		"index":          index,
		"availableCount": 0,
		"playerIds":      playerIDs,
		"gameId":         gameID,
		"treatmentId":    treatmentID,
		"batchId":        batchID,
		"lobbyConfigId":  lobbyConfigID,
	}, nil)
	if err != nil {
		return err
	}

	roundIDs := make([]string, 0, seedFlags.rounds)
	for r := 0; r < seedFlags.rounds; r++ {
		ids, err := s.seedRound(ctx, r, gameID, batchID, playerIDs)
		if err != nil {
			return err
		}
		roundIDs = append(roundIDs, ids)
	}

	s.now = s.now.Add(time.Minute)
	err = s.store.Put(ctx, "games", &study.Record{
		ID:        gameID,
		CreatedAt: s.now,
		Fields: map[string]any{
			"gameLobbyId": uuid.NewString(),
			"treatmentId": treatmentID,
			"roundIds":    roundIDs,
			"playerIds":   playerIDs,
			"batchId":     batchID,
		},
		Data: map[string]any{
			"topic": fmt.Sprintf("topic-%d", index),
		},
	})
	if err != nil {
		return err
	}
	s.count++

	for _, playerID := range playerIDs {
		if _, err := s.put(ctx, "player-inputs", map[string]any{
			"playerId": playerID,
			"gameId":   gameID,
		}, map[string]any{
			"feedback": "enjoyed the game",
			"rating":   1 + rand.Intn(5),
		}); err != nil {
			return err
		}
	}

	return nil
}

func (s *seeder) seedRound(ctx context.Context, index int, gameID, batchID string, playerIDs []string) (string, error) {
	stageID, err := s.put(ctx, "stages", map[string]any{
		"index":             index,
		"name":              "choice",
		"displayName":       "Choice",
		"startTimeAt":       s.now,
		"durationInSeconds": 60,
		"gameId":            gameID,
	}, map[string]any{
		"prompt": fmt.Sprintf("prompt-%d", index),
	})
	if err != nil {
		return "", err
	}

	roundID, err := s.put(ctx, "rounds", map[string]any{
		"index":    index,
		"stageIds": []string{stageID},
		"gameId":   gameID,
	}, map[string]any{
		"case": fmt.Sprintf("case-%d", index),
	})
	if err != nil {
		return "", err
	}

	for _, playerID := range playerIDs {
		if _, err := s.put(ctx, "player-rounds", map[string]any{
			"batchId":  batchID,
			"playerId": playerID,
			"roundId":  roundID,
			"gameId":   gameID,
		}, map[string]any{
			"choice": rand.Intn(2),
		}); err != nil {
			return "", err
		}

		if _, err := s.put(ctx, "player-stages", map[string]any{
			"batchId":  batchID,
			"playerId": playerID,
			"stageId":  stageID,
			"roundId":  roundID,
			"gameId":   gameID,
		}, map[string]any{
			"submittedAt": s.now.Format(time.RFC3339),
		}); err != nil {
			return "", err
		}
	}

	return roundID, nil
}
