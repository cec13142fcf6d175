package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"dompet/internal/config"
	"dompet/internal/database"
	apperrors "dompet/internal/errors"
	"dompet/internal/logger"
	"dompet/internal/models"
	"dompet/internal/services"
)

type starterPocket struct {
	name    string
	balance int64
	kind    models.PocketType
	color   string
}

var (
	userStarterPockets = []starterPocket{
		{"Bank Mandiri", 1200000, models.PocketTypeBank, "#3B82F6"},
		{"Bank Jago", 3000000, models.PocketTypeBank, "#F59E0B"},
		{"Cash", 500000, models.PocketTypeWallet, "#10B981"},
		{"GoPay", 250000, models.PocketTypeEwallet, "#0EA5E9"},
	}
	adminStarterPockets = []starterPocket{
		{"Vault", 999999999, models.PocketTypeBank, "#6366F1"},
	}
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	name := fs.String("name", "", "Display name")
	role := fs.String("role", string(models.UserRoleUser), "Role (admin or user)")
	avatar := fs.String("avatar", "", "Avatar URL")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", "", "Path to a sqlite database file (overrides DB_DRIVER)")
	seedPockets := fs.Bool("seed-pockets", false, "Create the default starter pockets for the new user")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-name <name>] [-role admin|user] [-password <password>] [-db <db_path>] [-seed-pockets]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}

	userRole := models.UserRole(*role)
	if userRole != models.UserRoleAdmin && userRole != models.UserRoleUser {
		return fmt.Errorf("invalid role %q (use admin or user)", *role)
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // Print newline after password input
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	dbManager, err := openDatabase(*dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = dbManager.Close() }()

	db := dbManager.DB()
	user, err := services.NewUserService(db, nil).CreateUser(*username, password, *name, *avatar, userRole)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			return fmt.Errorf("user %s already exists", *username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s (%s) created successfully with ID %s\n", user.Username, user.Role, user.ID)

	if *seedPockets {
		starters := userStarterPockets
		if user.IsAdmin() {
			starters = adminStarterPockets
		}
		pocketService := services.NewPocketService(db, nil)
		for _, p := range starters {
			if _, err := pocketService.CreatePocket(user.ID, p.name, p.balance, p.kind, p.color); err != nil {
				return fmt.Errorf("failed to create pocket %s: %w", p.name, err)
			}
		}
		fmt.Fprintf(stdout, "Created %d starter pocket(s)\n", len(starters))
	}

	return nil
}

// openDatabase connects with the environment configuration, or to the given
// sqlite file when path is set, and brings the schema up to date.
func openDatabase(path string) (*database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path != "" {
		cfg.DBDriver = database.DriverSQLite
		cfg.DBPath = path
	}

	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return dbManager, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal input such as pipes
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
