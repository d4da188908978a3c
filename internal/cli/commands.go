package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/db"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"gorm.io/gorm"
)

const (
	CommandResetPassword = "reset-password"
	CommandSetPassword   = "set-password"
	CommandPromote       = "promote"
	CommandSeed          = "seed"
)

const usage = `usage:
  vitalmente                         start the HTTP server
  vitalmente reset-password <email>  issue a temporary password
  vitalmente set-password <email>    set a password read from the terminal
  vitalmente promote <email> [role]  change a user's role (default admin)
  vitalmente seed                    load the embedded catalog`

var ErrUsage = errors.New(usage)

// Environment carries what maintenance commands need from the process.
type Environment struct {
	Database *gorm.DB
	Stdin    *os.File
	Out      io.Writer
}

// IsCommand reports whether name selects a maintenance command instead of
// the server.
func IsCommand(name string) bool {
	switch name {
	case CommandResetPassword, CommandSetPassword, CommandPromote, CommandSeed:
		return true
	default:
		return false
	}
}

// Run executes the maintenance command named by args[0].
func Run(env Environment, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	if env.Out == nil {
		env.Out = io.Discard
	}

	switch args[0] {
	case CommandResetPassword:
		if len(args) != 2 {
			return ErrUsage
		}
		return RunResetPasswordCommand(env.Database, args[1], env.Out)
	case CommandSetPassword:
		if len(args) != 2 {
			return ErrUsage
		}
		return RunSetPasswordCommand(env.Database, args[1], env.Stdin, env.Out)
	case CommandPromote:
		role := models.RoleAdmin
		switch len(args) {
		case 2:
		case 3:
			role = strings.ToLower(strings.TrimSpace(args[2]))
		default:
			return ErrUsage
		}
		return RunPromoteCommand(env.Database, args[1], role, env.Out)
	case CommandSeed:
		if len(args) != 1 {
			return ErrUsage
		}
		return RunSeedCommand(env.Database, env.Out)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], ErrUsage)
	}
}

func lookupUser(auth *services.AuthService, email string) (models.User, error) {
	if strings.TrimSpace(email) == "" {
		return models.User{}, errors.New("email is required")
	}
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", email)
	}

	user, err := auth.FindByEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func authService(database *gorm.DB) *services.AuthService {
	return services.NewAuthService(db.NewUserRepository(database))
}
