// internal/app/app.go
package app

import (
	"context"
	"log"
	"time"

	"github.com/markdave123-py/Resumely/internal/config"
	db "github.com/markdave123-py/Resumely/internal/core/database"
	"github.com/markdave123-py/Resumely/internal/core/extract"
	"github.com/markdave123-py/Resumely/internal/core/keypool"
	"github.com/markdave123-py/Resumely/internal/core/llm"
	"github.com/markdave123-py/Resumely/internal/core/objectstore"
	"github.com/markdave123-py/Resumely/internal/core/parser"
)

type App struct {
	DBClient     db.DbClient
	ObjectClient objectstore.ObjectClient
	LLM          *llm.GeminiLLM
	Parser       *parser.Parser
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectstore.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	ocr := extract.ProbeOCR()
	extractor := extract.New(ocr)

	pool := keypool.New(cfg.GeminiKeys)
	if pool.Empty() {
		log.Println("No Gemini API keys configured; running in text-only mode.")
	} else {
		log.Printf("Credential pool ready with %d key(s).", pool.Size())
	}

	llmProvider := llm.NewGeminiLLM(cfg.GenModel)

	resumeParser := parser.New(extractor, pool, llmProvider)

	server := NewServer(cfg, dbClient, objClient, resumeParser)

	return &App{
		DBClient:     dbClient,
		ObjectClient: objClient,
		LLM:          llmProvider,
		Parser:       resumeParser,
		Server:       server,
	}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
