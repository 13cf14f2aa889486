package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"scls/config"
	"scls/database"
	"scls/router"

	// Sections
	"scls/pkg/section"
	sectionCtrlImp "scls/pkg/section/controllerImp"

	// Student
	studentCtrlImp "scls/pkg/student/controllerImp"
	studentRepoImp "scls/pkg/student/repositoryImp"

	// Answers
	answerCtrlImp "scls/pkg/answer/controllerImp"
	answerRepoImp "scls/pkg/answer/repositoryImp"

	// Grades
	gradeRepoImp "scls/pkg/grade/repositoryImp"

	// Chat pipeline
	chatCtrlImp "scls/pkg/chat/controllerImp"
	chatRepoImp "scls/pkg/chat/repositoryImp"
	chatSvcImp "scls/pkg/chat/serviceImp"

	// AI + retrieval
	"scls/pkg/ai"
	"scls/pkg/kb/embedder"
	kbSvcImp "scls/pkg/kb/serviceImp"

	// Rate limiting
	"scls/pkg/ratelimit"

	// Admin + health
	adminCtrlImp "scls/pkg/admin/controllerImp"
	healthCtrlImp "scls/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + migrations
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Sections
	sections := section.NewRegistry(
		section.NewCh3(cfg.DocsDir),
		section.NewSevenEleven(cfg.DocsDir, cfg.ToleranceXLSX),
		section.NewDragonFire(),
	)

	// 4) AI clients (mock for local dev, otherwise the key is required)
	var llm ai.Client
	var emb embedder.Client
	if cfg.MockAI {
		llm = ai.NewMock()
		emb = embedder.NewMock()
	} else {
		if cfg.OpenAIAPIKey == "" {
			log.Fatal("OPENAI_API_KEY is required (set MOCK_AI=true for local development)")
		}
		llm = ai.NewOpenAI(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.ChatModel)
		emb = embedder.NewOpenAI(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.EmbedModel)
	}

	// 5) Retrieval index + rate limiter
	kbSvc := kbSvcImp.New(emb)
	limiter := ratelimit.New(cfg.MaxQueriesPerHr, cfg.MaxTokensPerDay)

	// 6) Repos
	studentRepo := studentRepoImp.New(db)
	answerRepo := answerRepoImp.New(db)
	chatRepo := chatRepoImp.New(db)
	gradeRepo := gradeRepoImp.New(db)

	// 7) Services + controllers
	hintSvc := chatSvcImp.NewHintService(sections, kbSvc, emb, llm, limiter, chatRepo)

	studentCtrl := studentCtrlImp.New(studentRepo)
	sectionCtrl := sectionCtrlImp.New(sections)
	answerCtrl := answerCtrlImp.New(answerRepo, sections)
	chatCtrl := chatCtrlImp.New(hintSvc, chatRepo, sections)
	adminCtrl := adminCtrlImp.New(studentRepo, answerRepo, chatRepo, gradeRepo, limiter, sections)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db, kbSvc)

	// 8) Echo + router
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(
		e,
		studentCtrl,
		sectionCtrl,
		answerCtrl,
		chatCtrl,
		adminCtrl,
		healthCtrl,
		cfg.AdminPassword,
	)

	// 9) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
