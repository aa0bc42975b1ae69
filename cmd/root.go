// file: cmd/root.go
// version: 1.2.0
// guid: 9a4d7c2f-6b1e-4e8a-b3d6-0f9c2a5d8b1e

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shopkit/storefront/internal/auth"
	"github.com/shopkit/storefront/internal/cache"
	"github.com/shopkit/storefront/internal/config"
	"github.com/shopkit/storefront/internal/importer"
	"github.com/shopkit/storefront/internal/server"
	"github.com/shopkit/storefront/internal/store"
)

var cfgFile string
var databasePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "E-commerce storefront backend",
	Long: `Storefront is the backend API for the e-commerce platform.

It serves user profiles, the product catalog, shopping carts and order
placement over HTTP, persisting documents in an embedded PebbleDB store.`,
}

// openStore opens the document store configured in AppConfig.
func openStore() (store.Store, error) {
	path := config.AppConfig.DatabasePath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	p, err := store.NewPebbleStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return store.Instrument(p), nil
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for profiles, products, cart and orders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("Using database: %s\n", config.AppConfig.DatabasePath)
		fmt.Printf("Environment: %s\n", config.AppConfig.Environment)

		creds, err := auth.LoadCredentials(config.AppConfig.CredentialsPath)
		if err != nil {
			// Token verification still runs, just without an API key on
			// the provider call. Mirrors local development without a
			// service account.
			log.Printf("[WARN] Could not load identity credentials: %v", err)
		}
		verifier := auth.NewHTTPVerifier(
			config.AppConfig.IdentityEndpoint,
			config.AppConfig.ProjectID,
			creds,
		)

		respCache := cache.New(config.AppConfig.CacheTTL)

		srv := server.NewServer(config.AppConfig, st, verifier, respCache)
		cfg := server.GetDefaultServerConfig()
		cfg.Port = config.AppConfig.Port
		cfg.Host = config.AppConfig.Host

		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// importProductsCmd represents the import-products command
var importProductsCmd = &cobra.Command{
	Use:   "import-products <csv-file>",
	Short: "Import products from a CSV file",
	Long: `Import products from a CSV file into the products collection.

Expected columns: product_id,name,description,price,image_url,stock,category.
Rows without a product_id get a generated id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("Using database: %s\n", config.AppConfig.DatabasePath)
		fmt.Printf("Reading products from: %s\n", args[0])

		summary, err := importer.ImportProductsFromCSV(st, args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d products\n", summary.Imported)
		if len(summary.Errors) > 0 {
			fmt.Printf("%d rows failed:\n", len(summary.Errors))
			for _, e := range summary.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.storefront.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "storefront.pebble", "path to the PebbleDB document store")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importProductsCmd)

	serveCmd.Flags().String("port", "", "port to listen on (overrides PORT)")
	serveCmd.Flags().String("host", "", "host to bind to (overrides HOST)")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")

	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".storefront")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
