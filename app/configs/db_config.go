package configs

import (
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenConnection dials MySQL with the retry policy from the environment.
// The shop container tends to come up before the database does.
func OpenConnection() (*gorm.DB, error) {

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		LoadENV.DBUser,
		LoadENV.DBPassword,
		LoadENV.DBHost,
		LoadENV.DBPort,
		LoadENV.DBName,
	)

	maxRetries := LoadENV.DBMaxRetries
	retryDelay := LoadENV.DBRetryDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Printf("Connecting to database %s (attempt %d/%d)", LoadENV.DBName, i+1, maxRetries)

		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
			}
			if pingErr == nil {
				log.Println("✅ Database connection successful!")
				return db, nil
			}
			err = pingErr
		}

		lastErr = err
		log.Printf("❌ Database not ready: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
