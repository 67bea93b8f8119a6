package view

import (
	"github.com/LukePeterson/3musketeers/pkg/convention/deployment"
	"github.com/LukePeterson/3musketeers/pkg/convention/release"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type row struct {
	key   string
	value string
}

func Release(s release.Summary) string {
	return card("release", []row{
		{"uri", s.Uri},
		{"arch", s.Architecture},
		{"sha", s.Sha},
		{"origin", s.Origin},
		{"built", s.Age},
	})
}

func Deployment(d deployment.Deployment) string {
	rows := []row{{"url", d.Url}}

	if d.Configuration != nil {
		rows = append(rows,
			row{"function", aws.ToString(d.Configuration.FunctionName)},
			row{"modified", aws.ToString(d.Configuration.LastModified)},
		)
	}

	rows = append(rows,
		row{"sha", d.Tags["Sha"]},
		row{"message", d.Message()},
	)

	return card("deployment", rows)
}

func card(title string, rows []row) string {
	lines := []string{titleStyle.Render(title)}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(r.key), r.value))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
