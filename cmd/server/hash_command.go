package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/service/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// newHashCommand prints a bcrypt hash for seeding accounts by hand, e.g. the
// first Admin user.
func newHashCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:         "hash [password]",
		Short:       "Print the bcrypt hash of a password",
		Long:        "Print the bcrypt hash of a password. Without an argument the password is read from the first line of stdin.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, args)
			if err != nil {
				return err
			}
			if len(password) < domain.MinPasswordLength {
				return domain.ErrPasswordTooShort
			}
			if len(password) > domain.MaxPasswordLength {
				return domain.ErrPasswordTooLong
			}

			hash, err := auth.NewBcryptVerifier(cost).Hash(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", domain.ErrEmptyPassword
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
