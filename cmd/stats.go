/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gojoint/mesh/readers"
)

// StatsCmd prints mesh statistics
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print element, node and adjacency statistics of a mesh",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gridFile := viper.GetString("gridFile")
		if gridFile == "" {
			return fmt.Errorf("must supply a grid file (-F, --gridFile)")
		}
		m, err := readers.ReadMeshFile(gridFile)
		if err != nil {
			return err
		}
		m.PrintStatistics()
		st := m.Topology().ComputeStatistics()
		fmt.Printf("  Adjacency:\n")
		fmt.Printf("    Max node valence: %d\n", st.MaxNodeValence)
		fmt.Printf("    AnyNode: %d pairs, %d components, largest %d\n",
			st.AnyNodePairs, st.AnyNodeComponents, st.LargestAnyNodeComponent)
		fmt.Printf("    SharedEdge: %d pairs, %d components, largest %d\n",
			st.SharedEdgePairs, st.SharedEdgeComponents, st.LargestSharedEdgeComponent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(StatsCmd)
}
