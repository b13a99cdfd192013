package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"depwait/internal/logger"
)

// EnvVar is the environment variable consulted when no CLI argument is
// given.
const EnvVar = "INIT_DEPENDENCIES"

// Load implements the config loader. arg is the single
// optional CLI argument: empty string means "consult INIT_DEPENDENCIES",
// "-" means read standard input, anything else is treated as a file path.
func Load(arg string, stdin io.Reader) (Document, error) {
	source, fromFile, err := resolveSource(arg, stdin)
	if err != nil {
		return Document{}, err
	}
	return decode(source, fromFile)
}

// resolveSource returns the raw document bytes and whether they came from
// a file (used only to decide what is safe to echo in logs).
func resolveSource(arg string, stdin io.Reader) ([]byte, bool, error) {
	switch {
	case arg == "-":
		logger.Infof("reading dependency document from standard input")
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, false, fmt.Errorf("reading document from stdin: %w", err)
		}
		return data, false, nil

	case arg != "":
		logger.Infof("reading dependency document from file %q", arg)
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, false, fmt.Errorf("reading document from %q: %w", arg, err)
		}
		return data, true, nil

	default:
		envVal, ok := os.LookupEnv(EnvVar)
		if !ok || envVal == "" {
			return nil, false, fmt.Errorf("no document argument given and %s is not set", EnvVar)
		}
		if info, err := os.Stat(envVal); err == nil && info.Mode().IsRegular() {
			logger.Infof("reading dependency document from file named by %s: %q", EnvVar, envVal)
			data, err := os.ReadFile(envVal)
			if err != nil {
				return nil, false, fmt.Errorf("reading document from %q: %w", envVal, err)
			}
			return data, true, nil
		}
		logger.Infof("using inline dependency document from %s", EnvVar)
		return []byte(envVal), false, nil
	}
}

// decode tries YAML-superset-of-JSON first, then falls back to strict
// JSON. Inline document text is never logged; file
// contents may be (at debug level only).
func decode(data []byte, fromFile bool) (Document, error) {
	if fromFile {
		logger.Debugf("document contents:\n%s", string(data))
	}

	if doc, err := decodeYAML(data); err == nil {
		return doc, nil
	}

	doc, err := decodeJSON(data)
	if err != nil {
		return Document{}, fmt.Errorf("document is neither valid YAML nor valid JSON: %w", err)
	}
	return doc, nil
}

func decodeYAML(data []byte) (Document, error) {
	var doc *Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	if doc == nil {
		return Document{}, fmt.Errorf("empty or null document")
	}
	return *doc, nil
}

func decodeJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
