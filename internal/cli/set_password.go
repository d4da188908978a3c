package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"gorm.io/gorm"
)

// RunSetPasswordCommand prompts twice for a new password without echo and
// stores it for the user.
func RunSetPasswordCommand(database *gorm.DB, email string, stdin *os.File, out io.Writer) error {
	auth := authService(database)
	user, err := lookupUser(auth, email)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "New password: ")
	password, err := readPassword(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	confirmation, err := readPassword(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}

	if string(password) != string(confirmation) {
		return errors.New("passwords do not match")
	}

	if err := auth.SetPassword(user.ID, string(password)); err != nil {
		if errors.Is(err, services.ErrWeakPassword) {
			return errors.New("password must be 8-72 characters with upper case, lower case and a digit")
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password updated for %s\n", user.Email)
	return nil
}
