package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/HermawanSutanto/sertifikat-lokal2/common"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/util"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Parse expands ${VAR} references from the environment, then decodes and validates the document.
func Parse(yml []byte) (*shared.Config, error) {
	config := new(shared.Config)

	expanded := os.ExpandEnv(string(yml))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := util.ValidateStruct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(util.GetValidationErrors(err), ", "))
	}

	return config, nil
}

func LoadConfig(path string) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}

	yml, readErr := os.ReadFile(path)
	if readErr != nil {
		slog.Error("Failed to read config", "path", path, "error", readErr)
		os.Exit(1)
	}

	config, err := Parse(yml)
	if err != nil {
		slog.Error("Failed to load config", "path", path, "error", err)
		os.Exit(1)
	}

	common.Config = config
	initLogger(config)
}

func initLogger(config *shared.Config) {
	var handler slog.Handler
	if config.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}
