package main

import (
	"context"
	"fmt"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/session"
)

type assignment struct {
	SchoolID string   `json:"school" validate:"required,max=64"`
	Keys     []string `json:"features" validate:"dive,featurekey"`
}

// assign replaces the features enabled for a school.
func (cli *commandLine) assign(schoolID string, keys []string) error {
	if cli.assigner == nil {
		return errReadOnlySrc
	}

	data := assignment{SchoolID: core.CleanString(schoolID)}
	for _, k := range keys {
		data.Keys = append(data.Keys, core.CleanString(k, true /* lower */))
	}
	if err := cli.validate.Struct(data); err != nil {
		return err
	}

	ctx := context.Background()
	tenant := session.Tenant{SchoolID: data.SchoolID}
	if err := cli.assigner.AssignFeatures(ctx, tenant, data.Keys); err != nil {
		return err
	}
	if cli.invalidate != nil {
		if err := cli.invalidate(ctx, tenant); err != nil {
			return err
		}
	}
	fmt.Fprintf(cli.out, "school %q: %d feature(s) assigned\n", tenant.SchoolID, len(data.Keys))
	return nil
}
