package cli

import (
	"fmt"
	"io"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/security"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand issues a temporary password that must be changed
// on the next login.
func RunResetPasswordCommand(database *gorm.DB, email string, out io.Writer) error {
	auth := authService(database)
	user, err := lookupUser(auth, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := auth.SetTemporaryPassword(user.ID, temporaryPassword); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
