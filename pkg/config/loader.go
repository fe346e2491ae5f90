package config

import (
	"context"
	"os"

	"rogue-core/pkg/dungeon"
	"rogue-core/pkg/integration"

	"gopkg.in/yaml.v3"
)

// LoadSpecialRoomPopulations loads an operator-supplied override of the
// special-room population table (spec 4.6) from a YAML file and installs
// it via dungeon.SetSpecialPopulations. Protected by the same
// circuit-breaker/retry wrapper the teacher used for all config I/O, since
// this runs once at startup against a file system that may be slow or
// briefly unavailable (network mount, container cold start).
func LoadSpecialRoomPopulations(filename string) error {
	ctx := context.Background()

	return integration.ExecuteConfigOperation(ctx, func(ctx context.Context) error {
		data, err := os.ReadFile(filename)
		if err != nil {
			return err
		}

		var override map[string]dungeon.PopulationTable
		if err := yaml.Unmarshal(data, &override); err != nil {
			return err
		}

		dungeon.SetSpecialPopulations(override)
		return nil
	})
}
