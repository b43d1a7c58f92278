package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megabonk/catalog-api/internal/clients/source"
	"github.com/megabonk/catalog-api/internal/entities/catalog"
)

var verifyStrict bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify catalog documents against the published count fixture",
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "fail on any count mismatch or unusable document")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := &source.Config{DataDir: dataDir}
	if verifyStrict {
		cfg.ExpectedCounts = source.DefaultExpectedCounts()
	}

	src, err := source.New(cfg)
	if err != nil {
		return err
	}

	var failed bool
	for _, t := range catalog.AllTypes() {
		coll, err := src.LoadCollection(ctx, t)
		if err != nil {
			failed = true
			fmt.Printf("%-12s FAIL  %v\n", t.Plural(), err)
			continue
		}
		fmt.Printf("%-12s OK    %d entities (version %s)\n", t.Plural(), coll.Len(), coll.Version)
	}

	if failed && verifyStrict {
		return fmt.Errorf("catalog verification failed")
	}
	return nil
}
