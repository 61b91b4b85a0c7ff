/*
Package database owns the Postgres connection pool and the per-farmer
document store (crops, chats, profiles). Each farmer's records live in their
own rows keyed by the externally issued user id; no two requests race on the
same logical record.
*/
package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
)

// Service represents a service that interacts with the database.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection pool.
	Close()

	// Store returns the document store backed by this connection.
	Store() *Store
}

type service struct {
	pool  *pgxpool.Pool
	store *Store
}

var (
	database   = os.Getenv("FARM_DB_DATABASE")
	password   = os.Getenv("FARM_DB_PASSWORD")
	username   = os.Getenv("FARM_DB_USERNAME")
	port       = os.Getenv("FARM_DB_PORT")
	host       = os.Getenv("FARM_DB_HOST")
	schema     = os.Getenv("FARM_DB_SCHEMA")
	dbInstance *service
)

func NewService() Service {
	// Reuse connection
	if dbInstance != nil {
		return dbInstance
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s", username, password, host, port, database, schema)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v\n", err)
	}

	dbInstance = &service{
		pool:  pool,
		store: NewStore(pool),
	}
	return dbInstance
}

func (s *service) Store() *Store {
	return s.store
}

// Health checks the health of the database connection.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["max_conns"] = strconv.Itoa(int(poolStats.MaxConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)

	if poolStats.AcquiredConns() > (poolStats.MaxConns() * 8 / 10) { // 80% capacity
		stats["message"] = "The database connection pool is experiencing heavy load."
	}
	if poolStats.EmptyAcquireCount() > 0 {
		stats["message"] = "The application has tried to acquire a connection from an empty pool. Consider increasing max connections."
	}

	return stats
}

// Close closes the database connection pool.
func (s *service) Close() {
	log.Printf("Disconnected from database: %s", database)
	s.pool.Close()
}
