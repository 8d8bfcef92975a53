// cmd/accountctl/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dangerclosesec/accountd/internal/config"
	"github.com/dangerclosesec/accountd/internal/database"
	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	databaseURL string
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&databaseURL, "db", "d", "", "Database connection URL (defaults to environment configuration)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedProductsCmd)
	rootCmd.AddCommand(createProductCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "accountctl",
	Short: "accountctl manages the account service database and product catalog",
	Long:  `accountctl runs schema migrations and maintains the product catalog for the account service.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := database.NewMigrator(resolveDatabaseURL())
		if err != nil {
			log.Fatalf("Failed to set up migrator: %v", err)
		}
		defer m.Close()

		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("Database is up to date")
				return
			}
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Migrations applied")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := database.NewMigrator(resolveDatabaseURL())
		if err != nil {
			log.Fatalf("Failed to set up migrator: %v", err)
		}
		defer m.Close()

		if err := m.Steps(-1); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		fmt.Println("Rolled back one migration")
	},
}

// seedProducts is the default catalog for a fresh deployment.
var seedProducts = []model.Product{
	{Code: "notify", Name: "Notify", Description: "Notification delivery"},
	{Code: "media", Name: "Media", Description: "Media storage and transcoding"},
	{Code: "billing", Name: "Billing", Description: "Invoicing and payments"},
}

var seedProductsCmd = &cobra.Command{
	Use:   "seed-products",
	Short: "Insert the default product catalog",
	Run: func(cmd *cobra.Command, args []string) {
		repo := openProductRepo()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		created := 0
		for i := range seedProducts {
			p := seedProducts[i]
			if _, err := repo.FindByCode(ctx, p.Code); err == nil {
				if verbose {
					fmt.Printf("Product %q already exists, skipping\n", p.Code)
				}
				continue
			} else if !errors.Is(err, domain.ErrProductNotFound) {
				log.Fatalf("Failed to check product %q: %v", p.Code, err)
			}

			if err := repo.Create(ctx, &p); err != nil {
				log.Fatalf("Failed to create product %q: %v", p.Code, err)
			}
			created++
			if verbose {
				fmt.Printf("Created product %q (%s)\n", p.Code, p.ID)
			}
		}
		fmt.Printf("Seeded %d products\n", created)
	},
}

var createProductCmd = &cobra.Command{
	Use:   "create-product [code] [name]",
	Short: "Create a single product",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openProductRepo()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		description, _ := cmd.Flags().GetString("description")
		product := &model.Product{
			Code:        args[0],
			Name:        args[1],
			Description: description,
		}
		if err := repo.Create(ctx, product); err != nil {
			log.Fatalf("Failed to create product: %v", err)
		}
		fmt.Printf("Created product %q (%s)\n", product.Code, product.ID)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the accountctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("accountctl v1.0.0")
	},
}

func resolveDatabaseURL() string {
	if databaseURL != "" {
		return databaseURL
	}
	return config.Load().DatabaseURL()
}

func openDB() *gorm.DB {
	sqlDB, err := database.Open(config.Load().DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db, err := database.Wrap(sqlDB)
	if err != nil {
		log.Fatalf("Failed to set up gorm: %v", err)
	}
	return db
}

func openProductRepo() *repository.ProductRepository {
	return repository.NewProductRepository(openDB())
}

func main() {
	createProductCmd.Flags().String("description", "", "Product description")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
