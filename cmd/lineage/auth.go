package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lineagehub/internal/models"
	"lineagehub/internal/permissions"
	"lineagehub/internal/validation"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the server and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateEmail(loginEmail); err != nil {
			return err
		}
		if err := validation.ValidatePassword(loginPassword); err != nil {
			return err
		}

		resp, err := current.client.Login(cmd.Context(), models.LoginRequest{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			return err
		}
		if err := current.session.SetAuth(resp.User, resp.AccessToken); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", resp.User.FullName, resp.User.Email)
		printRoles(resp.User)
		return nil
	},
}

var (
	registerEmail    string
	registerPassword string
	registerName     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account (pending approval)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateEmail(registerEmail); err != nil {
			return err
		}
		if err := validation.ValidatePassword(registerPassword); err != nil {
			return err
		}
		if err := validation.ValidateFullName(registerName); err != nil {
			return err
		}

		resp, err := current.client.Register(cmd.Context(), models.RegisterRequest{
			Email:    registerEmail,
			Password: registerPassword,
			FullName: registerName,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s (status %s)\n", resp.Email, resp.Status)
		if resp.Message != "" {
			fmt.Println(resp.Message)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.session.ClearAuth(); err != nil {
			return err
		}
		current.cache.Clear()
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user and refresh the cached profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		user, err := current.client.Me(cmd.Context())
		if err != nil {
			return err
		}
		// Roles may have changed since login; keep the stored profile fresh
		if err := current.session.UpdateUser(*user); err != nil {
			return err
		}

		fmt.Printf("%s <%s> status=%s\n", user.FullName, user.Email, user.Status)
		printRoles(*user)
		return nil
	},
}

func printRoles(user models.User) {
	if len(user.Roles) == 0 {
		fmt.Println("Roles: none")
		return
	}
	var parts []string
	for _, r := range user.Roles {
		if r.ManagedMemberID != nil {
			parts = append(parts, fmt.Sprintf("%s(managed=%s)", r.Role, *r.ManagedMemberID))
		} else {
			parts = append(parts, string(r.Role))
		}
	}
	fmt.Printf("Roles: %s\n", strings.Join(parts, ", "))
	if permissions.IsSuperAdmin(user) {
		fmt.Println("Access: full administration")
	} else if ids := permissions.ManagedMemberIDs(user); len(ids) > 0 {
		fmt.Printf("Access: branch administration over %s\n", strings.Join(ids, ", "))
	}
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("name")
}
