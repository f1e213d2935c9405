package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lineagehub/internal/graph"
	"lineagehub/internal/models"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "View the family tree",
}

var (
	treeRoot  string
	treeDepth int
)

var treeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the tree as an indented outline",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		tree, err := current.client.GetTree(cmd.Context(), treeRoot, treeDepth)
		if err != nil {
			return err
		}
		if err := graph.CheckGenerations(*tree); err != nil {
			current.log.WithError(err).Warn("served tree violates the generation invariant")
		}

		g, err := graph.FromTreeData(*tree)
		if err != nil {
			return fmt.Errorf("served tree is inconsistent: %w", err)
		}
		names := make(map[string]models.TreeNode, len(tree.Nodes))
		roots := make([]string, 0)
		for _, n := range tree.Nodes {
			names[n.ID] = n
			if len(g.Parents(n.ID)) == 0 && n.IsBloodRelative {
				roots = append(roots, n.ID)
			}
		}

		fmt.Printf("Family tree: %d members, %d relationships, %d generations\n",
			tree.Metadata.TotalNodes, tree.Metadata.TotalEdges, tree.Metadata.MaxGeneration+1)
		for _, rootID := range roots {
			walk := g.Walk(rootID, -1, true)
			for {
				v, ok := walk.Next()
				if !ok {
					break
				}
				n := names[v.ID]
				suffix := ""
				if !n.IsBloodRelative {
					suffix = " (spouse)"
				}
				if n.IsDeceased {
					suffix += " †"
				}
				fmt.Printf("%*s%s%s\n", v.Depth*2, "", n.FullName, suffix)
			}
		}
		return nil
	},
}

var treePathCmd = &cobra.Command{
	Use:   "path <from-id> <to-id>",
	Short: "Show the relationship path between two members",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.requireAuth(); err != nil {
			return err
		}
		path, err := current.client.GetTreePath(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		for i, n := range path.Path {
			if i > 0 {
				fmt.Print(" -> ")
			}
			fmt.Print(n.FullName)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	treeCmd.AddCommand(treeShowCmd, treePathCmd)
	treeShowCmd.Flags().StringVar(&treeRoot, "root", "", "root member id (default: whole tree)")
	treeShowCmd.Flags().IntVar(&treeDepth, "depth", 0, "depth bound (0 = unbounded)")
}
