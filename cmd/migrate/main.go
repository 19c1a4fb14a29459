package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/gestor/backend/internal/infrastructure/logger"
	"github.com/gestor/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `Usage: migrate [-path <dir>] <command>

Commands:
  up              apply all pending migrations
  down            roll back the most recent migration
  steps <n>       apply n migrations (negative rolls back)
  version         print the current schema version
  force <v>       force the schema version without running migrations
  create <name>   scaffold a new migration file pair
  list            list migration files
`

func main() {
	path := flag.String("path", "migrations", "directory holding migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := args[0]

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	// create and list only touch the filesystem; no database needed.
	switch command {
	case "create":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		file, err := migration.CreateMigration(*path, args[1], "")
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("up", file.UpPath),
			zap.String("down", file.DownPath))
		return
	case "list":
		files, err := migration.ListMigrations(*path)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	m, err := migration.NewFromURL(cfg.Database.DSN(), *path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		_ = m.Close()
	}()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal("steps requires an integer argument", zap.Error(convErr))
		}
		err = m.Steps(n)
	case "version":
		version, dirty, verErr := m.Version()
		if verErr != nil {
			log.Fatal("Failed to read schema version", zap.Error(verErr))
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	case "force":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		v, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal("force requires an integer argument", zap.Error(convErr))
		}
		err = m.Force(v)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Done")
}
