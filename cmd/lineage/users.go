package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lineagehub/internal/api"
	"lineagehub/internal/models"
	"lineagehub/internal/permissions"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts and roles (admin)",
}

// requireAdmin gates user management locally; the server enforces it too
func requireAdmin() error {
	user, ok := current.session.User()
	if !ok {
		return errors.New("not logged in (run 'lineage login')")
	}
	if !permissions.IsSuperAdmin(user) {
		return errors.New("user management requires the SUPER_ADMIN role")
	}
	return nil
}

var (
	usersPage   int
	usersSize   int
	usersStatus string
	usersRole   string
	usersSearch string
)

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		page, err := current.client.ListUsers(cmd.Context(), api.UserFilters{
			Page:   usersPage,
			Size:   usersSize,
			Status: models.UserStatus(usersStatus),
			Role:   models.RoleType(usersRole),
			Search: usersSearch,
		})
		if err != nil {
			return err
		}
		for _, u := range page.Content {
			fmt.Printf("%-36s %-8s %-30s %s\n", u.ID, u.Status, u.Email, u.FullName)
		}
		fmt.Printf("Page %d/%d (%d accounts)\n", page.Page+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		user, err := current.client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> status=%s\n", user.FullName, user.Email, user.Status)
		printRoles(*user)
		return nil
	},
}

var usersApproveCmd = &cobra.Command{
	Use:   "approve <user-id>",
	Short: "Activate a pending account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		user, err := current.client.ApproveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		current.cache.Invalidate("users")
		fmt.Printf("Approved %s (status %s)\n", user.Email, user.Status)
		return nil
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate <user-id>",
	Short: "Deactivate an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		user, err := current.client.DeactivateUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		current.cache.Invalidate("users")
		fmt.Printf("Deactivated %s (status %s)\n", user.Email, user.Status)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		if err := current.client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		current.cache.Invalidate("users")
		fmt.Println("Account deleted")
		return nil
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage an account's role grants",
}

var rolesListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List role grants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		resp, err := current.client.GetUserRoles(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Roles of %s:\n", resp.UserEmail)
		for _, r := range resp.Roles {
			if r.ManagedMemberID != nil {
				name := ""
				if r.ManagedMemberName != nil {
					name = " " + *r.ManagedMemberName
				}
				fmt.Printf("  %s  %s managing %s%s\n", r.ID, r.Role, *r.ManagedMemberID, name)
			} else {
				fmt.Printf("  %s  %s\n", r.ID, r.Role)
			}
		}
		return nil
	},
}

var roleManagedMember string

var rolesAddCmd = &cobra.Command{
	Use:   "add <user-id> <role>",
	Short: "Grant a role (SUPER_ADMIN|BRANCH_ADMIN|USER)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		req := models.AddUserRoleRequest{Role: models.RoleType(args[1])}
		if roleManagedMember != "" {
			if req.Role != models.RoleBranchAdmin {
				return errors.New("--managed-member only applies to BRANCH_ADMIN")
			}
			req.ManagedMemberID = &roleManagedMember
		}
		role, err := current.client.AddUserRole(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		current.cache.Invalidate("users")
		fmt.Printf("Granted %s (role id %s)\n", role.Role, role.ID)
		return nil
	},
}

var rolesRemoveCmd = &cobra.Command{
	Use:   "remove <user-id> <role-id>",
	Short: "Revoke a role grant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		if err := current.client.DeleteUserRole(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		current.cache.Invalidate("users")
		fmt.Println("Role revoked")
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersApproveCmd,
		usersDeactivateCmd, usersDeleteCmd, rolesCmd)
	rolesCmd.AddCommand(rolesListCmd, rolesAddCmd, rolesRemoveCmd)

	f := usersListCmd.Flags()
	f.IntVar(&usersPage, "page", 0, "page number")
	f.IntVar(&usersSize, "size", 20, "page size")
	f.StringVar(&usersStatus, "status", "", "filter by status (PENDING|ACTIVE|INACTIVE)")
	f.StringVar(&usersRole, "role", "", "filter by role")
	f.StringVar(&usersSearch, "search", "", "email or name search")

	rolesAddCmd.Flags().StringVar(&roleManagedMember, "managed-member", "", "member id scoping a BRANCH_ADMIN grant")
}
