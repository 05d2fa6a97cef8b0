// Package config loads the devnet harness's TOML configuration: where it
// keeps its state, which secp256k1 key the escrow treats as its withdrawal
// operator, and which AlkaneId identities the harness grants admin rights
// to. It has no bearing on contract semantics — those are pure functions
// of storage state and opcode input.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Sprimage/SatCity/crypto"
)

// Config is the devnet harness's bootstrap configuration.
type Config struct {
	ListenAddress        string `toml:"ListenAddress"`
	DataDir              string `toml:"DataDir"`
	NetworkName          string `toml:"NetworkName"`
	OperatorKeystorePath string `toml:"OperatorKeystorePath"`

	// DAOBlock/DAOTx and OwnerBlock/OwnerTx are the AlkaneId components the
	// harness uses as the escrow's DAO and the verifier's deployment-time
	// owner respectively. They identify callers within the simulated host,
	// not cryptographic material, so they are plain config values rather
	// than keystore-backed secrets.
	DAOBlock   uint64 `toml:"DAOBlock"`
	DAOTx      uint64 `toml:"DAOTx"`
	OwnerBlock uint64 `toml:"OwnerBlock"`
	OwnerTx    uint64 `toml:"OwnerTx"`
}

// Load reads the configuration at path, creating a fresh default (with a
// freshly generated operator keystore) if it does not yet exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "satcity-devnet"
	}
	if err := ensureOperatorKeystore(&cfg.OperatorKeystorePath, filepath.Dir(path)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ensureOperatorKeystore(pathField *string, configDir string) error {
	if strings.TrimSpace(*pathField) == "" {
		*pathField = filepath.Join(configDir, "operator.keystore")
	}
	if _, err := os.Stat(*pathField); os.IsNotExist(err) {
		key, genErr := crypto.GenerateOperatorKey()
		if genErr != nil {
			return genErr
		}
		return os.WriteFile(*pathField, key.Bytes(), 0o600)
	} else if err != nil {
		return err
	}
	return nil
}

// createDefault writes a fresh config with a generated operator keystore
// and fixed genesis DAO/owner identities alongside path.
func createDefault(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		ListenAddress: ":7701",
		DataDir:       filepath.Join(dir, "satcity-data"),
		NetworkName:   "satcity-devnet",
		DAOBlock:      2,
		DAOTx:         7,
		OwnerBlock:    2,
		OwnerTx:       7,
	}
	if err := ensureOperatorKeystore(&cfg.OperatorKeystorePath, dir); err != nil {
		return nil, err
	}
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// LoadOperatorKey reads the raw 32-byte scalar persisted at cfg's operator
// keystore path.
func (cfg *Config) LoadOperatorKey() (*crypto.OperatorKey, error) {
	b, err := os.ReadFile(cfg.OperatorKeystorePath)
	if err != nil {
		return nil, err
	}
	return crypto.OperatorKeyFromBytes(b)
}
