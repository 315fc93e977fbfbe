// Package main - persistence.go
//
// This file implements configuration persistence. Settings changed from the
// tray are written back to data.json immediately so they survive restarts.
//
// Load Behavior:
//   - If data.json exists: Load configuration
//   - If file doesn't exist: Use default configuration
//   - If file is corrupted: Log error, use defaults
package main

import (
	"encoding/json"
	"os"
)

const dataFile = "data.json"

// SaveData saves configuration to data.json with 2-space indentation.
func SaveData(data *PersistentData) error {
	file, err := os.Create(dataFile)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}

	LogInfo("Data saved to %s", dataFile)
	return nil
}

// LoadData loads configuration from data.json. A missing or corrupted file
// falls back to defaults instead of failing, so a bad edit never prevents
// startup.
func LoadData() (*PersistentData, error) {
	if _, err := os.Stat(dataFile); os.IsNotExist(err) {
		LogInfo("No existing data file, creating new configuration")
		return NewPersistentData(), nil
	}

	file, err := os.Open(dataFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data PersistentData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		LogError("Failed to decode data file: %v", err)
		return NewPersistentData(), nil
	}
	if data.Config == nil {
		data.Config = NewConfig()
	}

	LogInfo("Data loaded from %s", dataFile)
	return &data, nil
}
