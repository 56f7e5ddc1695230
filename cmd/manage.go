package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cybrarymin/cinema/cmd/api"
	"github.com/cybrarymin/cinema/internal/data"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	superuserEmail         string
	superuserPassword      string
	superuserPasswordStdin bool
)

const superuserPasswordEnv = "CINEMA_SUPERUSER_PASSWORD"

// superuserPasswordFrom picks the admin password from the first line of stdin
// when fromStdin is set, then the --password flag, then the environment.
func superuserPasswordFrom(flagValue string, fromStdin bool, stdin io.Reader) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "read password from stdin")
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return "", errors.New("empty password on stdin")
		}
		return line, nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(superuserPasswordEnv); env != "" {
		return env, nil
	}
	return "", errors.Errorf("a password is required: use --password-stdin, --password or %s", superuserPasswordEnv)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireDSN()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := api.NewLogger()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		db, err := api.OpenDB(ctx, &logger)
		if err != nil {
			return err
		}
		defer db.Close()

		results, err := data.Migrate(ctx, db)
		if err != nil {
			return err
		}
		for _, result := range results {
			logger.Info().Int64("version", result.Source.Version).Str("duration", result.Duration.String()).Msg("applied migration")
		}
		statuses, err := data.MigrationStatus(ctx, db)
		if err != nil {
			return err
		}
		for _, status := range statuses {
			fmt.Printf("%-4d %s\n", status.Source.Version, status.State)
		}
		return nil
	},
}

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an admin user, or promote an existing one",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireDSN()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := superuserPasswordFrom(superuserPassword, superuserPasswordStdin, cmd.InOrStdin())
		if err != nil {
			return err
		}
		logger := api.NewLogger()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := api.OpenDB(ctx, &logger)
		if err != nil {
			return err
		}
		defer db.Close()

		created, err := api.CreateSuperuser(ctx, data.NewModels(db), superuserEmail, password)
		if err != nil {
			return err
		}
		if created {
			logger.Info().Str("email", superuserEmail).Msg("admin user created")
		} else {
			logger.Info().Str("email", superuserEmail).Msg("existing user promoted to admin")
		}
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "email of the admin user")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "password of the admin user, prefer --password-stdin or "+superuserPasswordEnv)
	createSuperuserCmd.Flags().BoolVar(&superuserPasswordStdin, "password-stdin", false, "read the password from the first line of stdin")
	createSuperuserCmd.MarkFlagRequired("email")
	createSuperuserCmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}
