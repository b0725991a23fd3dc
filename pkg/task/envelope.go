package task

import (
	"encoding/json"
	"fmt"
)

// Build-variable names carrying an encoded envelope between stages.
const (
	AddPackageVariable   = "ADD_PACKAGE"
	UpdateConfigVariable = "UPDATE_CONFIG"
)

const (
	kindAddPackage   = "add-package"
	kindUpdateConfig = "update-config"
)

// AddPackage describes a deferred channel attach, chosen in an earlier
// stage and executed in a later one.
type AddPackage struct {
	Channel     string `json:"channel"`
	PackageName string `json:"packageName"`
	PackageID   int64  `json:"packageId"`
}

// UpdateConfig describes a deferred configuration file update.
type UpdateConfig struct {
	ConfigChannel string `json:"configChannel"`
	ConfigPath    string `json:"configPath"`
	Contents      string `json:"contents"`
}

// Envelope is the textual hand-off format between build stages: a single
// self-describing string small enough for a build variable. Exactly one of
// the payload fields is set, selected by Kind.
type Envelope struct {
	Kind         string        `json:"kind"`
	AddPackage   *AddPackage   `json:"addPackage,omitempty"`
	UpdateConfig *UpdateConfig `json:"updateConfig,omitempty"`
}

func EncodeAddPackage(payload AddPackage) (string, error) {
	return encode(Envelope{Kind: kindAddPackage, AddPackage: &payload})
}

func EncodeUpdateConfig(payload UpdateConfig) (string, error) {
	return encode(Envelope{Kind: kindUpdateConfig, UpdateConfig: &payload})
}

func encode(envelope Envelope) (string, error) {
	data, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("encoding %s task: %w", envelope.Kind, err)
	}
	return string(data), nil
}

// Decode parses an envelope and validates its discriminator against the
// payload it carries.
func Decode(encoded string) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal([]byte(encoded), &envelope); err != nil {
		return Envelope{}, fmt.Errorf("decoding task envelope: %w", err)
	}

	switch envelope.Kind {
	case kindAddPackage:
		if envelope.AddPackage == nil {
			return Envelope{}, fmt.Errorf("task envelope of kind '%s' carries no payload", envelope.Kind)
		}
	case kindUpdateConfig:
		if envelope.UpdateConfig == nil {
			return Envelope{}, fmt.Errorf("task envelope of kind '%s' carries no payload", envelope.Kind)
		}
	default:
		return Envelope{}, fmt.Errorf("unknown task envelope kind '%s'", envelope.Kind)
	}

	return envelope, nil
}
