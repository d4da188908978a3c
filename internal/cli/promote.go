package cli

import (
	"fmt"
	"io"

	"gorm.io/gorm"
)

func RunPromoteCommand(database *gorm.DB, email string, role string, out io.Writer) error {
	auth := authService(database)
	user, err := lookupUser(auth, email)
	if err != nil {
		return err
	}

	if err := auth.SetRole(user.ID, role); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	fmt.Fprintf(out, "%s is now %s\n", user.Email, role)
	return nil
}
