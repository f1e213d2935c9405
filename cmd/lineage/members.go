package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lineagehub/internal/api"
	"lineagehub/internal/cache"
	"lineagehub/internal/graph"
	"lineagehub/internal/models"
	"lineagehub/internal/validation"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage family members",
}

var (
	listPage       int
	listSize       int
	listSearch     string
	listGeneration int
	listGender     string
	listBranchRoot string
)

var membersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List members",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		filters := api.MemberFilters{
			Page:         listPage,
			Size:         listSize,
			Search:       listSearch,
			RootMemberID: listBranchRoot,
		}
		if cmd.Flags().Changed("generation") {
			filters.Generation = &listGeneration
		}
		if listGender != "" {
			filters.Gender = models.Gender(listGender)
		}

		key := cache.Key("members", filters.CacheKey())
		v, err := current.cache.Fetch(key, func() (any, error) {
			return current.client.ListMembers(cmd.Context(), filters)
		})
		if err != nil {
			return err
		}
		page := v.(*models.PaginatedResponse[models.Member])

		for _, m := range page.Content {
			marker := " "
			if m.CanEdit {
				marker = "*"
			}
			blood := "in-law"
			if m.IsBloodRelative {
				blood = "blood"
			}
			fmt.Printf("%s %-36s  gen %-3d %-6s %s  %s\n", marker, m.ID, m.Generation, m.Gender, blood, m.FullName)
		}
		fmt.Printf("Page %d/%d (%d members)\n", page.Page+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var membersGetCmd = &cobra.Command{
	Use:   "get <member-id>",
	Short: "Show a member with relationships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		detail, err := current.client.GetMember(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printMemberDetail(detail)
		return nil
	},
}

var (
	createName     string
	createGender   string
	createBirth    string
	createDeath    string
	createBranch   string
	createNotBlood bool
	createParents  []string
	createSpouses  []string
	createGenValue int
)

var membersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a member, optionally linked to parents or spouses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		if err := validation.ValidateFullName(createName); err != nil {
			return err
		}
		req := models.CreateMemberRequest{
			FullName:        createName,
			Gender:          models.Gender(createGender),
			IsBloodRelative: !createNotBlood,
			ParentIDs:       createParents,
			SpouseIDs:       createSpouses,
		}
		if createBirth != "" {
			req.BirthDate = &createBirth
		}
		if createDeath != "" {
			req.DeathDate = &createDeath
		}
		if err := validation.ValidateDates(req.BirthDate, req.DeathDate); err != nil {
			return err
		}
		if createBranch != "" {
			req.BranchName = &createBranch
		}
		if len(createParents) > graph.MaxParents {
			return graph.ErrTooManyParents
		}

		// Preview the generation the server will assign
		parents, err := fetchMembers(cmd, createParents)
		if err != nil {
			return err
		}
		spouses, err := fetchMembers(cmd, createSpouses)
		if err != nil {
			return err
		}
		var explicit *int
		if cmd.Flags().Changed("generation") {
			explicit = &createGenValue
		}
		fmt.Printf("New member will be generation %d\n", graph.PreviewGeneration(parents, spouses, explicit))

		member, err := current.client.CreateMember(cmd.Context(), req)
		if err != nil {
			return err
		}
		current.cache.Invalidate("members")
		current.cache.Invalidate("tree")
		fmt.Printf("Created %s (%s), generation %d\n", member.FullName, member.ID, member.Generation)
		return nil
	},
}

var (
	updateName     string
	updateGender   string
	updateBirth    string
	updateDeath    string
	updateBranch   string
	updateNotBlood bool
)

var membersUpdateCmd = &cobra.Command{
	Use:   "update <member-id>",
	Short: "Update a member's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		// The served canEdit flag is authoritative; refuse locally before
		// the server has to
		detail, err := current.client.GetMember(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !detail.CanEdit {
			return fmt.Errorf("you are not permitted to edit %s", detail.FullName)
		}

		req := models.UpdateMemberRequest{
			FullName:        detail.FullName,
			Gender:          detail.Gender,
			BirthDate:       detail.BirthDate,
			DeathDate:       detail.DeathDate,
			IsBloodRelative: detail.IsBloodRelative,
			BranchName:      detail.BranchName,
		}
		if updateName != "" {
			if err := validation.ValidateFullName(updateName); err != nil {
				return err
			}
			req.FullName = updateName
		}
		if updateGender != "" {
			req.Gender = models.Gender(updateGender)
		}
		if updateBirth != "" {
			req.BirthDate = &updateBirth
		}
		if updateDeath != "" {
			req.DeathDate = &updateDeath
		}
		if err := validation.ValidateDates(req.BirthDate, req.DeathDate); err != nil {
			return err
		}
		if updateBranch != "" {
			req.BranchName = &updateBranch
		}
		if cmd.Flags().Changed("not-blood") {
			req.IsBloodRelative = !updateNotBlood
		}

		member, err := current.client.UpdateMember(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		current.cache.Invalidate("members")
		current.cache.Invalidate("tree")
		fmt.Printf("Updated %s\n", member.FullName)
		return nil
	},
}

var deleteForce bool

var membersDeleteCmd = &cobra.Command{
	Use:   "delete <member-id>",
	Short: "Delete a member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		if err := current.client.DeleteMember(cmd.Context(), args[0], deleteForce); err != nil {
			if api.KindOf(err) == api.KindConflict && !deleteForce {
				return fmt.Errorf("%w (member has relationships; use --force to delete anyway)", err)
			}
			return err
		}
		current.cache.Invalidate("members")
		current.cache.Invalidate("tree")
		fmt.Println("Member deleted")
		return nil
	},
}

var membersAvatarCmd = &cobra.Command{
	Use:   "avatar <member-id> <image-file>",
	Short: "Upload a member portrait",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		url, err := current.client.UploadAvatar(cmd.Context(), args[0], filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		current.cache.Invalidate(cache.Key("members", args[0]))
		fmt.Printf("Avatar uploaded: %s\n", url)
		return nil
	},
}

var (
	subtreeDepth   int
	subtreeSpouses bool
)

var membersSubtreeCmd = &cobra.Command{
	Use:   "subtree <member-id>",
	Short: "Show the descendants of a member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		sub, err := current.client.GetSubtree(cmd.Context(), args[0], subtreeDepth, subtreeSpouses)
		if err != nil {
			return err
		}
		fmt.Printf("Subtree of %s (%d members, max depth %d)\n", sub.RootMember.FullName, sub.TotalMembers, sub.MaxDepth)
		for _, m := range sub.Members {
			fmt.Printf("%*s%s (%s)\n", m.Depth*2, "", m.FullName, m.ID)
		}
		return nil
	},
}

func fetchMembers(cmd *cobra.Command, ids []string) ([]models.Member, error) {
	var out []models.Member
	for _, id := range ids {
		detail, err := current.client.GetMember(cmd.Context(), id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch member %s: %w", id, err)
		}
		out = append(out, detail.Member)
	}
	return out, nil
}

func printMemberDetail(d *models.MemberDetail) {
	fmt.Printf("%s (%s)\n", d.FullName, d.ID)
	fmt.Printf("  gender=%s generation=%d blood=%t deceased=%t canEdit=%t\n",
		d.Gender, d.Generation, d.IsBloodRelative, d.IsDeceased, d.CanEdit)
	if d.BranchName != nil {
		fmt.Printf("  branch: %s\n", *d.BranchName)
	}
	if d.BirthDate != nil {
		fmt.Printf("  born: %s\n", *d.BirthDate)
	}
	if d.DeathDate != nil {
		fmt.Printf("  died: %s\n", *d.DeathDate)
	}
	printRelated("parents", d.Relationships.Parents)
	printRelated("spouses", d.Relationships.Spouses)
	printRelated("children", d.Relationships.Children)
}

func printRelated(label string, members []models.MemberSummary) {
	if len(members) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, m := range members {
		fmt.Printf("    %s (%s)\n", m.FullName, m.ID)
	}
}

func init() {
	membersCmd.AddCommand(membersListCmd, membersGetCmd, membersCreateCmd,
		membersUpdateCmd, membersDeleteCmd, membersAvatarCmd, membersSubtreeCmd)

	f := membersListCmd.Flags()
	f.IntVar(&listPage, "page", 0, "page number")
	f.IntVar(&listSize, "size", 20, "page size")
	f.StringVar(&listSearch, "search", "", "name search")
	f.IntVar(&listGeneration, "generation", 0, "filter by generation")
	f.StringVar(&listGender, "gender", "", "filter by gender (MALE|FEMALE|OTHER)")
	f.StringVar(&listBranchRoot, "root", "", "restrict to the subtree of a member id")

	f = membersCreateCmd.Flags()
	f.StringVar(&createName, "name", "", "full name")
	f.StringVar(&createGender, "gender", "OTHER", "gender (MALE|FEMALE|OTHER)")
	f.StringVar(&createBirth, "birth", "", "birth date (YYYY-MM-DD)")
	f.StringVar(&createDeath, "death", "", "death date (YYYY-MM-DD)")
	f.StringVar(&createBranch, "branch", "", "branch name")
	f.BoolVar(&createNotBlood, "not-blood", false, "mark as married-in (not a blood relative)")
	f.StringSliceVar(&createParents, "parent", nil, "parent member id (repeatable, max 2)")
	f.StringSliceVar(&createSpouses, "spouse", nil, "spouse member id (repeatable)")
	f.IntVar(&createGenValue, "generation", 0, "explicit generation for a root member")
	membersCreateCmd.MarkFlagRequired("name")

	f = membersUpdateCmd.Flags()
	f.StringVar(&updateName, "name", "", "full name")
	f.StringVar(&updateGender, "gender", "", "gender (MALE|FEMALE|OTHER)")
	f.StringVar(&updateBirth, "birth", "", "birth date (YYYY-MM-DD)")
	f.StringVar(&updateDeath, "death", "", "death date (YYYY-MM-DD)")
	f.StringVar(&updateBranch, "branch", "", "branch name")
	f.BoolVar(&updateNotBlood, "not-blood", false, "mark as married-in (not a blood relative)")

	membersDeleteCmd.Flags().BoolVar(&deleteForce, "force", false, "delete even with existing relationships")

	f = membersSubtreeCmd.Flags()
	f.IntVar(&subtreeDepth, "depth", 0, "maximum depth (0 = server default)")
	f.BoolVar(&subtreeSpouses, "spouses", true, "include spouses")
}
