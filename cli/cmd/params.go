package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/foldrun/cli/render"
	"github.com/justapithecus/foldrun/params"
)

// ParamRow is one registry entry in params output.
type ParamRow struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Section     string `json:"section"`
	Default     string `json:"default,omitempty"`
	Advanced    bool   `json:"advanced"`
	Description string `json:"description,omitempty"`
}

// ParamsCommand returns the params command: a read-only listing of the
// pipeline parameter registry.
func ParamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "List the pipeline parameter registry",
		Flags: append(ReadOnlyFlags(),
			&cli.BoolFlag{
				Name:  "advanced",
				Usage: "Include advanced parameters",
			},
			&cli.StringFlag{
				Name:  "section",
				Usage: "Only show parameters in this section",
			},
		),
		Action: paramsAction,
	}
}

func paramsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	var rows []ParamRow
	for _, spec := range params.Registry() {
		if spec.Advanced && !c.Bool("advanced") {
			continue
		}
		if section := c.String("section"); section != "" && spec.Section != section {
			continue
		}

		row := ParamRow{
			Name:        spec.Name,
			Kind:        spec.Kind.String(),
			Section:     spec.Section,
			Advanced:    spec.Advanced,
			Description: spec.Description,
		}
		if spec.Default != nil {
			row.Default = fmt.Sprintf("%v", spec.Default)
		}
		rows = append(rows, row)
	}

	return r.Render(rows)
}
