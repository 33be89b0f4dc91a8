// main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sgcarsight/backend/config"
	"github.com/sgcarsight/backend/database"
	"github.com/sgcarsight/backend/handlers"
	"github.com/sgcarsight/backend/workflows"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "sgcarsight",
		Short:         "Singapore vehicle registration data pipeline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newRunCmd(&configPath))
	return root
}

// bootstrap loads config and opens the database; shared by every command.
func bootstrap(configPath string) (*config.Config, *sql.DB, error) {
	// .env is a local-dev convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file.")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	log.Printf("Configuration loaded. Env: %s, DB name: %s\n", cfg.Env, cfg.Database.DBName)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	return cfg, db, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server with the workflow trigger endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			service := workflows.NewService(cfg, db)
			wfHandler := handlers.NewWorkflowHandler(service, cfg.TriggerToken)
			metaHandler := handlers.NewMetaHandler(database.NewMetaStore(db))

			mux := http.NewServeMux()
			mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if err := db.Ping(); err != nil {
					http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
					log.Printf("Health check failed: DB ping error: %v", err)
					return
				}
				fmt.Fprintln(w, `{"status": "ok"}`)
			})
			mux.HandleFunc("/api/updated", metaHandler.LastUpdatedHandler)
			mux.HandleFunc("/workflows/trigger", wfHandler.TriggerAllHandler)
			mux.HandleFunc("/workflows/regenerate", wfHandler.RegenerateHandler)
			mux.HandleFunc("/workflows/", wfHandler.TriggerDomainHandler)

			addr := ":" + cfg.Server.Port
			log.Printf("Server starting on http://localhost%s\n", addr)
			return http.ListenAndServe(addr, mux)
		},
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	var month, dataType string

	cmd := &cobra.Command{
		Use:   "run [cars|coe|deregistrations|all|regenerate]",
		Short: "Run one workflow from the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			service := workflows.NewService(cfg, db)
			ctx := context.Background()

			switch args[0] {
			case "cars":
				_, err = service.RunCars(ctx)
			case "coe":
				_, err = service.RunCOE(ctx)
			case "deregistrations":
				_, err = service.RunDeregistrations(ctx)
			case "all":
				_, errs := service.RunAll(ctx)
				for _, e := range errs {
					if e != nil {
						err = e
					}
				}
			case "regenerate":
				if month == "" || dataType == "" {
					return fmt.Errorf("regenerate requires --month and --data-type")
				}
				_, err = service.RunRegenerate(ctx, month, dataType)
			default:
				return fmt.Errorf("unknown workflow %q", args[0])
			}
			return err
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to regenerate (YYYY-MM)")
	cmd.Flags().StringVar(&dataType, "data-type", "", "data type to regenerate (cars, coe, deregistrations)")
	return cmd
}
