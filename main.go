package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/Chris91ss/Proper-Trench-Coats-App/handler"
	"github.com/Chris91ss/Proper-Trench-Coats-App/service"
	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

func main() {
	cfg := store.Config{
		Kind:   store.Kind(getenv("STORE_BACKEND", string(store.KindCSV))),
		Path:   getenv("STORE_PATH", "trenchcoats.csv"),
		Driver: getenv("DB_DRIVER", "postgres"),
		DSN:    os.Getenv("DB_DSN"),
	}
	addr := getenv("HTTP_ADDR", ":8082")

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("opening %s store: %v", cfg.Kind, err)
	}
	log.Printf("using %s store", cfg.Kind)

	inv := service.NewInventory(st)
	basket := service.NewBasket()
	log.Printf("basket session %s", basket.SessionID())

	exporters := map[string]store.BasketExporter{
		"csv":  store.CSVBasketExporter{Path: getenv("BASKET_CSV_PATH", "basket.csv")},
		"html": store.HTMLBasketExporter{Path: getenv("BASKET_HTML_PATH", "basket.html")},
	}
	if sqlStore, ok := st.(*store.SQLStore); ok {
		exporters["sql"] = store.SQLBasketExporter{Driver: cfg.Driver, DB: sqlStore.DB()}
	}

	h := handler.NewHandler(inv, basket, exporters)
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		log.Printf("server running on %s", addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := st.Close(); err != nil {
		log.Printf("store close: %v", err)
	}
	log.Println("store closed")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
