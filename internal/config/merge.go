package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI     = "api"
	keyCompany = "company"
	keyDraft   = "draft"
	keyLogging = "logging"
	keyOutput  = "output"
	keyServer  = "server"
	keyBridge  = "bridge"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. Keys present in the overlay replace entire sections in the target.
// Keys absent in the overlay, and unknown keys, are left alone.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes node into a fresh zero value and replaces the
// matching section of target.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		return replace(node, &target.API)
	case keyCompany:
		return replace(node, &target.Company)
	case keyDraft:
		return replace(node, &target.Draft)
	case keyLogging:
		return replace(node, &target.Logging)
	case keyOutput:
		return replace(node, &target.Output)
	case keyServer:
		return replace(node, &target.Server)
	case keyBridge:
		return replace(node, &target.Bridge)
	default:
		return nil
	}
}

func replace[T any](node *yaml.Node, dst *T) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}
