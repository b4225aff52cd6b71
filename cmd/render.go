package main

import (
	"fmt"
	"strings"

	"github.com/tinfoilsh/verification-center/util"
	"github.com/tinfoilsh/verification-center/verification"
	"github.com/tinfoilsh/verification-center/view"
)

func renderStatus(status verification.VerificationStatus) string {
	var b strings.Builder
	color := util.StatusColor(string(status.SummaryStatus))
	fmt.Fprintln(&b, util.Colorizef(color, "%s %s", util.StatusMark(string(status.SummaryStatus)), status.SummaryMessage))
	if status.FirstErrorMessage != "" {
		fmt.Fprintln(&b, util.Colorizef(util.ColorRed, "  %s", status.FirstErrorMessage))
	}
	return b.String()
}

func renderBadge(badge verification.BadgeStatus) string {
	return util.Colorizef(util.StatusColor(string(badge.State)), "%s", badge.Label)
}

func renderSteps(steps []view.Step) string {
	var b strings.Builder
	for _, step := range steps {
		status := string(step.Status)
		fmt.Fprintln(&b, util.Colorizef(util.StatusColor(status), "%s %s", util.StatusMark(status), step.Title))
		if step.Error != "" {
			fmt.Fprintln(&b, util.Colorizef(util.ColorRed, "    %s", step.Error))
		}
		if step.Measurement != nil {
			fmt.Fprintln(&b, util.Colorizef(util.ColorGrey, "    %s", step.Measurement))
		}
		if step.Hardware != nil {
			fmt.Fprintln(&b, util.Colorizef(util.ColorGrey, "    platform %s", step.Hardware.Platform()))
		}
		if step.Diff != nil && !step.Diff.Loading {
			for _, r := range step.Diff.Registers {
				color := util.ColorGreen
				if !r.Match {
					color = util.ColorRed
				}
				fmt.Fprintln(&b, util.Colorizef(color, "    [%d] %s %s", r.Index, r.Source, r.Runtime))
			}
		}
		for _, link := range step.Links {
			fmt.Fprintf(&b, "    %s: %s\n", link.Label, link.URL)
		}
	}
	return b.String()
}
