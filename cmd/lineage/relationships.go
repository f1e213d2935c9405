package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lineagehub/internal/graph"
	"lineagehub/internal/models"
)

var relCmd = &cobra.Command{
	Use:   "rel",
	Short: "Manage family relationships",
}

var relAddParentCmd = &cobra.Command{
	Use:   "add-parent <parent-id> <child-id>",
	Short: "Link a parent to a child",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		parentID, childID := args[0], args[1]

		// Pre-submit guard: rebuild the graph from the served tree and
		// reject cycles and over-parented children before the network call.
		tree, err := current.client.GetTree(cmd.Context(), "", 0)
		if err != nil {
			return err
		}
		g, err := graph.FromTreeData(*tree)
		if err != nil {
			return fmt.Errorf("served tree is inconsistent: %w", err)
		}
		if err := g.ValidateParentChild(parentID, childID); err != nil {
			if errors.Is(err, graph.ErrCycleDetected) {
				return fmt.Errorf("refusing to submit: %w", err)
			}
			return err
		}

		rel, err := current.client.AddParentChild(cmd.Context(), models.CreateParentChildRequest{
			ParentID: parentID,
			ChildID:  childID,
		})
		if err != nil {
			return err
		}
		current.cache.Invalidate("members")
		current.cache.Invalidate("tree")
		fmt.Printf("Linked %s as parent of %s (relationship %s)\n", rel.FromMemberName, rel.ToMemberName, rel.ID)
		return nil
	},
}

var relAddSpouseCmd = &cobra.Command{
	Use:   "add-spouse <member1-id> <member2-id>",
	Short: "Link two members as spouses",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		tree, err := current.client.GetTree(cmd.Context(), "", 0)
		if err != nil {
			return err
		}
		g, err := graph.FromTreeData(*tree)
		if err != nil {
			return fmt.Errorf("served tree is inconsistent: %w", err)
		}
		if err := g.ValidateSpouse(args[0], args[1]); err != nil {
			return err
		}

		rels, err := current.client.AddSpouse(cmd.Context(), models.CreateSpouseRequest{
			Member1ID: args[0],
			Member2ID: args[1],
		})
		if err != nil {
			return err
		}
		current.cache.Invalidate("members")
		current.cache.Invalidate("tree")
		if len(rels) > 0 {
			fmt.Printf("Linked %s and %s as spouses\n", rels[0].FromMemberName, rels[0].ToMemberName)
		}
		return nil
	},
}

var relRemoveCmd = &cobra.Command{
	Use:   "remove <relationship-id>",
	Short: "Remove a relationship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		if err := current.client.DeleteRelationship(cmd.Context(), args[0]); err != nil {
			return err
		}
		current.cache.Invalidate("members")
		current.cache.Invalidate("tree")
		fmt.Println("Relationship removed")
		return nil
	},
}

var relShowCmd = &cobra.Command{
	Use:   "show <member-id>",
	Short: "Show a member's relationships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		rels, err := current.client.GetMemberRelationships(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Relationships of %s (%s)\n", rels.MemberName, rels.MemberID)
		printRelGroup("parents", rels.Parents)
		printRelGroup("spouses", rels.Spouses)
		printRelGroup("children", rels.Children)
		return nil
	},
}

func printRelGroup(label string, members []models.RelatedMember) {
	if len(members) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, m := range members {
		fmt.Printf("    %s (%s) relationship=%s\n", m.MemberName, m.MemberID, m.RelationshipID)
	}
}

func init() {
	relCmd.AddCommand(relAddParentCmd, relAddSpouseCmd, relRemoveCmd, relShowCmd)
}
