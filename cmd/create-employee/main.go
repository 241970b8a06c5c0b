package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/smarttransit/bus-ticketing-backend/internal/config"
	"github.com/smarttransit/bus-ticketing-backend/internal/database"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/internal/services"
)

func main() {
	var (
		username  string
		fullName  string
		password  string
		dbURLFlag string
	)
	flag.StringVar(&username, "username", "", "login username for the new employee")
	flag.StringVar(&fullName, "full-name", "", "display name for the new employee")
	flag.StringVar(&password, "password", "", "initial password")
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.Parse()

	if username == "" || password == "" {
		log.Fatal("both -username and -password are required")
	}

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid BCRYPT_COST: %v", err)
		}
		bcryptCost = cost
	}

	// Build minimal database config without loading full app config
	dbCfg := config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	}

	db, err := database.NewConnection(dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := services.HashPassword(password, bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	employee := &models.Employee{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
		Status:       models.EmployeeStatusActive,
	}

	if err := database.NewEmployeeRepository(db).Create(employee); err != nil {
		log.Fatalf("failed to create employee: %v", err)
	}

	fmt.Println("Employee created:")
	fmt.Printf("  id:       %s\n", employee.ID)
	fmt.Printf("  username: %s\n", employee.Username)
	fmt.Printf("  status:   %s\n", employee.Status)
}
