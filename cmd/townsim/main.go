// townsim drives the core through a short scripted session, standing in for
// the browser UI loop: fixed-step ticks, a few casts, an interrupt, a drag
// reassignment, then a snapshot save.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/arpg-core/internal/config"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	"github.com/KirkDiggler/arpg-core/internal/repositories/snapshots"
	"github.com/KirkDiggler/arpg-core/internal/services"
	"github.com/KirkDiggler/arpg-core/internal/services/loadout"
	"github.com/KirkDiggler/arpg-core/internal/services/player"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Player: %s (class %s)", cfg.Player.ID, cfg.Player.ClassID)

	// Keep Redis client for cleanup
	var redisClient *redis.Client
	var repo snapshots.Repository

	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory snapshots")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				log.Printf("Redis unreachable: %v", pingErr)
				log.Println("Falling back to in-memory snapshots")
				redisClient = nil
			} else {
				repo = snapshots.NewRedis(&snapshots.RedisConfig{Client: redisClient})
				log.Println("Using Redis snapshot repository")
			}
			cancel()
		}
	}
	if redisClient != nil {
		defer func() {
			if closeErr := redisClient.Close(); closeErr != nil {
				log.Printf("Failed to close Redis client: %v", closeErr)
			}
		}()
	}

	provider, err := services.NewProvider(&services.ProviderConfig{
		PlayerID:   cfg.Player.ID,
		ClassID:    cfg.Player.ClassID,
		Repository: repo,
	})
	if err != nil {
		log.Fatalf("Failed to create core: %v", err)
	}

	ctx := context.Background()
	if err := provider.Restore(ctx); err != nil {
		log.Printf("Restore failed, continuing with defaults: %v", err)
	}

	runScript(provider, cfg)

	if err := provider.Save(ctx); err != nil {
		log.Printf("Failed to save snapshot: %v", err)
	} else {
		log.Println("Snapshot saved")
	}
}

// runScript plays a canned sequence against the core and logs what the HUD
// would show each step.
func runScript(provider *services.Provider, cfg *config.Config) {
	step := 1.0 / float64(cfg.Sim.TickRateHz)
	ticks := cfg.Sim.Duration * cfg.Sim.TickRateHz

	castSlot := shared.SlotSkill1
	castID := provider.Loadout.GetActionForSlot(castSlot)
	if castID == "" {
		log.Printf("No action bound to %s, nothing to cast", castSlot)
		return
	}
	castDef := provider.Registry.GetActionByID(castID)

	log.Printf("Casting %q from %s", castID, castSlot)
	result := provider.Player.Dispatch(&player.DispatchInput{ActionID: castID, Pressed: true})
	if !result.Executed {
		log.Printf("Dispatch refused: %s", result.Reason)
	}

	interruptAt := ticks / 3
	for i := 0; i < ticks; i++ {
		progress := 0.0
		snap := provider.Player.Snapshot()
		if snap.ActiveAction != "" && castDef != nil && castDef.CastDuration > 0 {
			progress = snap.CastProgress + step/castDef.CastDuration
		}

		provider.Player.Tick(&player.TickInput{Delta: step, AnimationProgress: progress})

		if i == interruptAt {
			log.Println("Simulated hit: interrupting")
			provider.Player.Interrupt()
		}
	}

	snap := provider.Player.Snapshot()
	log.Printf("State=%s health=%.1f/%.1f mana=%.1f/%.1f interrupts=%d",
		snap.State, snap.Health, snap.MaxHealth, snap.Mana, snap.MaxMana, snap.InterruptCounter)
	if snap.InterruptedAction != "" {
		log.Printf("Last interruption: %q at %.0f%%", snap.InterruptedAction, snap.InterruptedProgress*100)
	}

	// Drag the mouse-slot skill onto the fourth skill slot, UI-style.
	fromSlot := shared.SlotMouse1
	if provider.Loadout.GetActionForSlot(fromSlot) != "" {
		if err := provider.Drag.Press(&loadout.PressInput{SlotID: fromSlot, X: 10, Y: 10}); err != nil {
			log.Printf("Drag press failed: %v", err)
			return
		}
		provider.Drag.Move(24, 24) // Past the 5px threshold
		dropped, err := provider.Drag.Release(shared.SlotSkill4)
		if err != nil {
			log.Printf("Drop rejected: %v", err)
		} else if dropped.Committed {
			log.Printf("Moved %q to %s", dropped.ActionID, dropped.Slot)
		}
	}
}
