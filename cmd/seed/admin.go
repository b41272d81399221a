package main

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository/mongo"
	"alcyxob/ai-trainer/internal/service"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an admin account",
	Long: `Create a user with the admin role. Admins may add equipment and locations
to the shared catalog through the API. Registration over the API only ever
creates regular users.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWT.Secret == "" {
			return errors.New("jwt.secret (JWT_SECRET) must be set")
		}
		auth := service.NewAuthService(
			mongo.NewMongoUserRepository(appDB),
			mongo.NewMongoProfileRepository(appDB),
			cfg.JWT.Secret,
			cfg.JWT.Expiration,
		)

		user, err := auth.Register(cmd.Context(), adminName, adminEmail, adminPassword, domain.RoleAdmin)
		if errors.Is(err, service.ErrUserAlreadyExists) {
			color.Yellow("! %s already exists, left unchanged", adminEmail)
			return nil
		}
		if err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}

		color.Green("✓ Admin created")
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(user.ID.Hex()), user.Email)
		return nil
	},
}

func init() {
	adminCmd.Flags().StringVar(&adminName, "name", "Admin", "display name")
	adminCmd.Flags().StringVar(&adminEmail, "email", "", "login email (required)")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "login password (required)")
	_ = adminCmd.MarkFlagRequired("email")
	_ = adminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(adminCmd)
}
