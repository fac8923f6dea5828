package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/duke-colab/bluebook/pkg/domain/model"
)

// Reference holds the CLI flag for the calendar reference vocabulary: the
// known group (sponsor) and category names served to tool callers. The
// vocabulary lives in a local TOML file because the feed itself has no
// endpoint for it.
type Reference struct {
	path string
}

// Flags returns CLI flags for reference data configuration
func (x *Reference) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "reference-config",
			Usage:       "Path to the TOML file listing calendar groups and categories",
			Sources:     cli.EnvVars("BLUEBOOK_REFERENCE_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads the reference vocabulary. An unset path is not an
// error: the reference endpoints then serve empty lists.
func (x *Reference) Configure() (*model.ReferenceData, error) {
	if x.path == "" {
		return &model.ReferenceData{}, nil
	}
	return LoadReferenceData(x.path)
}

// referenceFile is the TOML shape of the reference vocabulary
type referenceFile struct {
	Groups     []string `toml:"groups"`
	Categories []string `toml:"categories"`
}

// LoadReferenceData loads and validates the reference vocabulary from a
// TOML file. Names must be non-empty and unique within their list.
func LoadReferenceData(path string) (*model.ReferenceData, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, "failed to read reference config",
			goerr.V(ConfigPathKey, path))
	}

	var file referenceFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse reference config",
			goerr.V(ConfigPathKey, path))
	}

	if err := validateNames("groups", file.Groups); err != nil {
		return nil, goerr.Wrap(err, "reference config validation failed",
			goerr.V(ConfigPathKey, path))
	}
	if err := validateNames("categories", file.Categories); err != nil {
		return nil, goerr.Wrap(err, "reference config validation failed",
			goerr.V(ConfigPathKey, path))
	}

	return &model.ReferenceData{
		Groups:     file.Groups,
		Categories: file.Categories,
	}, nil
}

func validateNames(list string, names []string) error {
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return goerr.Wrap(ErrMissingName, "empty name in reference list",
				goerr.V(ListKey, list), goerr.V(IndexKey, i))
		}
		if seen[name] {
			return goerr.Wrap(ErrDuplicateName, "duplicate name in reference list",
				goerr.V(ListKey, list), goerr.V(NameKey, name))
		}
		seen[name] = true
	}
	return nil
}
