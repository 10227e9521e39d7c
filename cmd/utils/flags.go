package utils

import (
	"os"
	"path/filepath"
)

var (
	VaultHome   string
	VaultConfig string
)

func GetVaultHome() string {
	if VaultHome != "" {
		return VaultHome
	}

	home := os.Getenv("TOKENVAULTHOME")

	if home != "" {
		return home
	}

	return os.ExpandEnv(filepath.Join("$HOME", ".tokenvault"))
}

func GetVaultConfigPath() string {
	if VaultConfig != "" {
		return VaultConfig
	}

	return GetVaultHome() + "/config/config.toml"
}
