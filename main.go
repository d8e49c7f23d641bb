package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"Pipewrap/internal/auth"
	"Pipewrap/internal/calc/batch"
	"Pipewrap/internal/calc/capacity"
	"Pipewrap/internal/calc/materials"
	"Pipewrap/internal/calc/recommend"
	"Pipewrap/internal/calc/repair"
	"Pipewrap/internal/calc/report"
	"Pipewrap/internal/catalog"
	"Pipewrap/internal/profile"
	"Pipewrap/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// loadCatalog returns the built-in certified table, or the one in the
// workbook named by CATALOG_XLSX when it is set.
func loadCatalog() *catalog.Catalog {
	path := os.Getenv("CATALOG_XLSX")
	if path == "" {
		return catalog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open catalog workbook %s: %v", path, err)
	}
	defer f.Close()
	cat, err := catalog.LoadWorkbook(f)
	if err != nil {
		log.Fatalf("load catalog workbook %s: %v", path, err)
	}
	log.Printf("loaded %d wrap systems from %s", len(cat.Systems()), path)
	return cat
}

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}
	cat := loadCatalog()

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/upload-avatar", profileH.UploadAvatar).Methods("POST")

	repairH := &repair.Handler{Catalog: cat}
	assessH := &capacity.Handler{}
	materialsH := &materials.Handler{Catalog: cat}
	recommendH := &recommend.Handler{Catalog: cat}
	batchH := &batch.Handler{Catalog: cat}
	reportH := &report.Handler{Catalog: cat}

	secureApi.HandleFunc("/tools/repair/calc", repairH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/repair/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/assess/b31g", assessH.Assess).Methods("POST")
	secureApi.HandleFunc("/tools/materials/estimate", materialsH.Estimate).Methods("POST")
	secureApi.HandleFunc("/tools/recommend/system", recommendH.System).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/catalog/systems", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cat.Systems())
	}).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
