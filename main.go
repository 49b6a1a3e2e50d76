package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/raushankrgupta/price-watcher/api"
	"github.com/raushankrgupta/price-watcher/config"
	"github.com/raushankrgupta/price-watcher/notify"
	"github.com/raushankrgupta/price-watcher/scheduler"
	"github.com/raushankrgupta/price-watcher/scrapers"
	"github.com/raushankrgupta/price-watcher/store"
	"github.com/raushankrgupta/price-watcher/tracker"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	st, err := store.ConnectMongo(config.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	lang := func(ctx context.Context) string {
		l, err := st.Language(ctx)
		if err != nil {
			return config.DefaultLanguage
		}
		return l
	}

	var notifiers notify.Fanout
	notifiers = append(notifiers, &notify.LogNotifier{Lang: lang})
	if config.SendGridAPIKey != "" && config.AlertEmailTo != "" {
		notifiers = append(notifiers, &notify.EmailNotifier{
			Lang:   lang,
			ToName: "Price Watcher",
			To:     config.AlertEmailTo,
		})
	}

	driver := tracker.NewDriver(st, scrapers.NewService(), notifiers)
	driver.Delay = config.CheckDelay
	driver.SampleTimeout = config.SampleTimeout

	// graceful shutdown coordination
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx, driver)
	}()

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	a := api.NewAPI(driver, st)

	http.HandleFunc("/auth/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/products", corsMiddleware(api.RequireAuth(a.ProductsHandler)))
	http.HandleFunc("/products/history", corsMiddleware(api.RequireAuth(a.HistoryHandler)))
	http.HandleFunc("/check", corsMiddleware(api.RequireAuth(a.CheckHandler)))
	http.HandleFunc("/check-all", corsMiddleware(api.RequireAuth(a.CheckAllHandler)))
	http.HandleFunc("/language", corsMiddleware(api.RequireAuth(a.LanguageHandler)))

	srv := &http.Server{Addr: ":" + config.Port}

	go func() {
		fmt.Printf("Server starting on port %s...\n", config.Port)
		fmt.Printf("Usage: curl \"http://localhost:%s/products\"\n", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server Shutdown: %v", err)
	}

	wg.Wait()
	log.Println("graceful shutdown complete")
}
