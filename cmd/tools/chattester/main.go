// Command chattester exercises the chat orchestrator from the terminal
// without running the HTTP server. Useful for checking credentials and
// prompt output against the live model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/lunafall/aura/backend/internal/config"
	avatarmodel "github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/model/memory"
	"github.com/lunafall/aura/backend/internal/service/ai"
	"github.com/lunafall/aura/backend/internal/service/chat"
	"github.com/lunafall/aura/backend/internal/service/image"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] no .env file, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	avatarID := flag.String("avatar", "luna", "preset avatar ID to chat with")
	message := flag.String("message", "", "user message to send")
	remember := flag.String("remember", "", "optional memory content stored before the turn")
	showPrompt := flag.Bool("show-prompt", false, "print the system prompt instead of calling the model")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if *message == "" {
		flag.Usage()
		log.Fatal("provide a message via -message")
	}

	store := avatarmodel.NewMemoryStore(avatarmodel.Seed())

	a, ok := store.Get(*avatarID)
	if !ok {
		log.Fatalf("unknown avatar %q; preset IDs are luna, echo, sage, cipher, blaze, river", *avatarID)
	}

	if *remember != "" {
		store.AddMemory(a.ID, memory.New(a.ID, "chattester", memory.CategoryTopic, *remember))
	}

	if *showPrompt {
		fmt.Println(ai.BuildSystemPrompt(a, store.Memories(a.ID)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Fatalf("failed to initialize AI service: %v", err)
		}
	} else {
		log.Println("[WARN] Ark credentials not configured, reply will be a canned template")
	}

	var enhancer image.Enhancer
	var generator chat.Generator
	if aiSvc != nil {
		enhancer = aiSvc
		generator = aiSvc
	}

	chatSvc := chat.NewService(store, generator, image.NewService(cfg.Image, enhancer))

	reply, err := chatSvc.Respond(ctx, a.ID, *message, nil)
	if err != nil {
		log.Fatalf("chat failed: %v", err)
	}

	fmt.Printf("%s: %s\n", a.Name, reply.Text)
	if reply.HasImage {
		fmt.Printf("image: %s\n", reply.ImageURL)
	}
}
