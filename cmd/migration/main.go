// Schema migration tool for the match database. Reads DB_URL and runs
// the SQL files under migrations/ with golang-migrate.
//
//	migration up
//	migration down [steps]
//	migration version
//	migration force <version>
package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	migrator, err := openMigrator()
	if err != nil {
		log.Fatal(err)
	}
	defer closeMigrator(migrator)

	command := strings.ToLower(strings.TrimSpace(os.Args[1]))
	switch command {
	case "up":
		runUp(migrator)
	case "down":
		runDown(migrator, os.Args[2:])
	case "version":
		runVersion(migrator)
	case "force":
		runForce(migrator, os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
}

func openMigrator() (*migrate.Migrate, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return nil, errors.New("DB_URL is required")
	}

	dir, err := migrationsDir()
	if err != nil {
		return nil, err
	}

	migrator, err := migrate.New("file://"+filepath.ToSlash(dir), normalizeDBURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return migrator, nil
}

func runUp(migrator *migrate.Migrate) {
	if err := migrator.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal(err)
		}
		log.Print("schema already up to date")
		return
	}
	log.Print("migrations applied")
}

func runDown(migrator *migrate.Migrate, args []string) {
	steps := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			log.Fatalf("invalid down steps %q: %v", args[0], err)
		}
		if parsed <= 0 {
			log.Fatal("down steps must be > 0")
		}
		steps = parsed
	}

	if err := migrator.Steps(-steps); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal(err)
		}
		log.Print("nothing to roll back")
		return
	}
	log.Printf("rolled back %d migration(s)", steps)
}

func runVersion(migrator *migrate.Migrate) {
	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return
	}
	if err != nil {
		log.Fatalf("read version: %v", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
}

func runForce(migrator *migrate.Migrate, args []string) {
	if len(args) == 0 {
		log.Fatal("force requires a version argument")
	}
	version, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		log.Fatalf("invalid version %q: %v", args[0], err)
	}
	if version < 0 {
		log.Fatal("version must be >= 0")
	}

	if err := migrator.Force(version); err != nil {
		log.Fatalf("force version %d: %v", version, err)
	}
	log.Printf("forced version to %d", version)
}

func closeMigrator(migrator *migrate.Migrate) {
	srcErr, dbErr := migrator.Close()
	if srcErr != nil {
		log.Printf("close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("close migration db: %v", dbErr)
	}
}

// migrationsDir prefers MIGRATIONS_DIR, then the repo-relative and
// container locations of the migration set.
func migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./migrations",
		"/app/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, ./migrations, /app/migrations)")
}

// normalizeDBURL mirrors the API server's pgbouncer workaround so both
// binaries accept the same DB_URL.
func normalizeDBURL(raw string) string {
	disable := strings.TrimSpace(strings.ToLower(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))
	switch disable {
	case "1", "true", "t", "yes", "y", "on":
	default:
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1\n", name)
}
