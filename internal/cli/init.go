package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/fsworkspace"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/usecase"
)

func initCmd() *cobra.Command {
	dir := "."
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a pipeline workspace (covidetl.yaml, data/, logs/, runs/)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(abs, force); err != nil {
				return err
			}

			fmt.Printf("Initialized covidetl workspace at %s\n", abs)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")

	return c
}
