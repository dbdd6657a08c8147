package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/RobertoSaucedoL/ELCHAL/internal/export"
	"github.com/RobertoSaucedoL/ELCHAL/internal/generator"
	"github.com/RobertoSaucedoL/ELCHAL/internal/llm"
	"github.com/RobertoSaucedoL/ELCHAL/internal/session"
	"github.com/RobertoSaucedoL/ELCHAL/internal/storage"
	"github.com/RobertoSaucedoL/ELCHAL/internal/suggest"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (OPTIONAL) ─────────────────────────
	var exportStorage export.Storage
	if storage.Configured() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		exportStorage = r2Client
		log.Println("✅ Export upload to R2 enabled")
	} else {
		log.Println("ℹ️  R2 not configured; exports are download-only")
	}

	// ───────────────────────── AI (OPTIONAL) ─────────────────────────
	var aiClient llm.Client
	gemini := llm.NewGeminiClient()
	if gemini.Configured() {
		aiClient = gemini
		log.Println("✅ Gemini suggestions enabled")
	} else {
		log.Println("ℹ️  Gemini not configured; using heuristic combos only")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	store := session.NewStore()
	gen := generator.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	suggestService := suggest.NewService(aiClient, gen, 45*time.Second)

	// ───────────────────────── HANDLERS ─────────────────────────
	sessionHandler := session.NewHandler(store)
	suggestHandler := suggest.NewHandler(store, suggestService)
	exportHandler := export.NewHandler(store, exportStorage)

	// ───────────────────────── SESSION ROUTES ─────────────────────────
	r.POST("/sessions", sessionHandler.Create)

	sessions := r.Group("/sessions/:id")
	{
		sessions.POST("/catalog", sessionHandler.UploadCatalog)
		sessions.GET("/catalog", sessionHandler.GetCatalog)

		sessions.PUT("/cost-model", sessionHandler.PutCostModel)
		sessions.PUT("/params", sessionHandler.PutParams)
		sessions.PUT("/strategy", sessionHandler.PutStrategy)

		sessions.POST("/combo/items", sessionHandler.UpsertItem)
		sessions.DELETE("/combo/items/:productID", sessionHandler.RemoveItem)
		sessions.PUT("/combo/name", sessionHandler.Rename)
		sessions.GET("/combo", sessionHandler.GetCombo)
		sessions.POST("/combo/apply", sessionHandler.ApplyCandidate)

		sessions.POST("/suggestions", suggestHandler.Suggest)
		sessions.GET("/export", exportHandler.Export)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Println("🚀 Combo simulator API running at http://localhost:" + port)
	r.Run(":" + port)
}
