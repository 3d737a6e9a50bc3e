package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/codec"
)

type checkReport struct {
	Path     string   `json:"path"`
	Lists    int      `json:"lists"`
	Cards    int      `json:"cards"`
	Problems []string `json:"problems"`
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a board document",
		Long: "Validates the document against the board schema and then checks the\n" +
			"decoded board for duplicate ids, cards filed under the wrong list,\n" +
			"unknown label colors and blank titles. Exits 1 when problems are found.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openDoc(args[0])
			if err != nil {
				return err
			}

			report := checkReport{Path: doc.Path(), Problems: []string{}}
			problems := codec.Validate(doc.Text())
			if len(problems) == 0 {
				b, err := codec.Decode(doc.Text())
				if err != nil {
					problems = append(problems, err)
				} else {
					report.Lists = len(b.Lists)
					report.Cards = b.CardCount()
					problems = codec.Verify(b)
				}
			}
			for _, p := range problems {
				report.Problems = append(report.Problems, p.Error())
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				if err := a.printJSON(out, report); err != nil {
					return err
				}
			} else if len(problems) == 0 {
				fmt.Fprintf(out, "%s: ok (%d lists, %d cards)\n", doc.Name(), report.Lists, report.Cards)
			} else {
				for _, p := range report.Problems {
					fmt.Fprintf(out, "%s: %s\n", doc.Name(), p)
				}
			}
			if len(problems) > 0 {
				return userError(fmt.Errorf("%s: %d problems", doc.Name(), len(problems)))
			}
			return nil
		},
	}
}
