package graph

import (
	"fmt"

	libgraph "github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists the ids of all stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := rpcStore.ListGraphs()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [graph-id]",
		Short: "Prints the components and filters of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("graph %s (%s)\n", g.ID, g.PathComponents)
			for _, c := range g.Components {
				fmt.Printf("  component %s %s\n", c.ID, c.Filename)
			}
			for _, f := range g.Filters {
				fmt.Printf("  filter %s %s (%d in, %d out, %d parameters)\n",
					f.ID, f.Name, len(f.InPipes), len(f.OutPipes), len(f.Parameters))
			}
			return nil
		},
	}
	paramsCmd = &cobra.Command{
		Use:   "params [graph-id] [filter-id]",
		Short: "Prints the parameters of a filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := loadFilter(args[0], args[1])
			if err != nil {
				return err
			}
			for _, p := range f.Parameters {
				if p == nil {
					continue
				}
				info := p.Info()
				fmt.Printf("%s %s(%s)=%s\n", info.ParameterID, info.Name, info.Type, p.Text())
			}
			return nil
		},
	}
	setParamCmd = &cobra.Command{
		Use:   "set-param [graph-id] [filter-id] [name] [value]",
		Short: "Sets the value of a filter parameter",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, f, err := loadFilter(args[0], args[1])
			if err != nil {
				return err
			}
			current, ok := f.Parameter(uuid.Nil, args[2])
			if !ok {
				return fmt.Errorf("filter %s has no parameter %s", f.ID, args[2])
			}

			// the update is matched by name, its own id is fresh
			update, err := libgraph.NewParameterOfType(current.Info().Type, args[2])
			if err != nil {
				return err
			}
			if err := update.SetText(args[3]); err != nil {
				return err
			}

			if err := rpcStore.SetParameters(g.ID, []libgraph.FilterParametersContainer{{
				FilterID:   f.ID,
				Parameters: []libgraph.FilterParameter{update},
			}}); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [graph-id]",
		Short: "Deletes a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("graph-id must be a uuid: %w", err)
			}
			if err := rpcStore.DeleteGraph(id); err != nil {
				return err
			}
			fmt.Println("deleted successfully")
			return nil
		},
	}
)

// loadGraph fetches the graph with the given id
func loadGraph(graphID string) (*libgraph.Graph, error) {
	id, err := uuid.Parse(graphID)
	if err != nil {
		return nil, fmt.Errorf("graph-id must be a uuid: %w", err)
	}
	g, ok, err := rpcStore.GetGraph(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("graph %s not found", id)
	}
	return g, nil
}

// loadFilter fetches a graph and looks up one of its filters
func loadFilter(graphID, filterID string) (*libgraph.Graph, *libgraph.Filter, error) {
	g, err := loadGraph(graphID)
	if err != nil {
		return nil, nil, err
	}
	id, err := uuid.Parse(filterID)
	if err != nil {
		return nil, nil, fmt.Errorf("filter-id must be a uuid: %w", err)
	}
	f, ok := g.Filter(id)
	if !ok {
		return nil, nil, fmt.Errorf("graph %s has no filter %s", g.ID, id)
	}
	return g, f, nil
}
