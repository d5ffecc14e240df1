/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/deploy"
	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	tablewriter "github.com/olekukonko/tablewriter"
)

func boolMark(v bool) string {
	if v {
		return "yes"
	}
	return ""
}

// RenderPlan writes the steps of the plan as table.
func (i *DdcInstance) RenderPlan(plan *specs.InvocationPlan, w io.Writer) {
	service := plan.Service
	if service == "" {
		service = "-"
	}
	fmt.Fprintf(w, "Subcommand: %s, Service: %s\n", plan.Subcommand, service)

	table := tablewriter.NewWriter(w)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeader([]string{
		"#", "Description", "Command", "Interactive", "Best Effort",
	})
	table.SetAutoWrapText(false)

	for idx, step := range plan.Steps {
		command := step.String()
		if step.Kind == specs.InvocationDeploy {
			stages := []string{}
			for _, s := range deploy.StagesFrom(deploy.StageArchiving) {
				stages = append(stages, string(s))
			}
			command += " (" + strings.Join(stages, ", ") + ")"
		}

		table.Append([]string{
			fmt.Sprintf("%d", idx+1),
			step.Description,
			command,
			boolMark(step.Interactive),
			boolMark(step.BestEffort),
		})
	}

	table.Render()
}
