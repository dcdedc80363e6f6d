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
	"context"

	"github.com/spf13/cobra"

	"github.com/notargets/gojoint/passes"
)

var (
	LapCmd = passCommand("lap", "Classify lap joints into roles M450..M455",
		func(r *passes.Runner) (*passes.Report, error) { return r.ClassifyLap() })
	TJointCmd = passCommand("tjoint", "Classify T joints into roles M201..M207",
		func(r *passes.Runner) (*passes.Report, error) { return r.ClassifyT() })
	SidesCmd = passCommand("sides", "Split two-row strips into SIDE_1 and SIDE_2",
		func(r *passes.Runner) (*passes.Report, error) { return r.SplitSides() })
	InferCCmd = passCommand("infer-c", "Collect the visible shells on the T elements but off A and B into SIDE_C",
		func(r *passes.Runner) (*passes.Report, error) { return r.InferSideC() })
	OrderCmd = passCommand("order", "Order chain components into the ORDERED collection",
		func(r *passes.Runner) (*passes.Report, error) { return r.OrderChains() })
	MaterialCmd = &cobra.Command{
		Use:   "material",
		Short: "Collect the shells of the weld material into weld_elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := cmd.Flags().GetString("material")
			if err != nil {
				return err
			}
			return runPass(context.Background(), func(r *passes.Runner) (*passes.Report, error) {
				if material != "" {
					r.Params.Weld.Material = material
				}
				return r.CollectMaterial()
			})
		},
	}
	WeldGroupsCmd = passCommand("weld-groups", "Classify weld groups into T_Joint_side and T_Joint_center",
		func(r *passes.Runner) (*passes.Report, error) { return r.ClassifyWeldGroups() })
	ExtremitiesCmd = &cobra.Command{
		Use:   "extremities",
		Short: "Extract tip nodes of element chains into END_1, END_2 and REMAINDER",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			junction, err := cmd.Flags().GetBool("junction")
			if err != nil {
				return err
			}
			return runPass(context.Background(), func(r *passes.Runner) (*passes.Report, error) {
				return r.ExtractExtremities(junction)
			})
		},
	}
)

func init() {
	ExtremitiesCmd.Flags().BoolP("junction", "j", false, "only nodes of elements flagged by the triple-junction check qualify as tips")
	MaterialCmd.Flags().StringP("material", "m", "", "material name, overriding Weld.Material")
	rootCmd.AddCommand(LapCmd, TJointCmd, SidesCmd, InferCCmd, OrderCmd, ExtremitiesCmd, MaterialCmd, WeldGroupsCmd)
}
