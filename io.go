//go:build !js

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the data directory location, creating it if needed.
func DataDir() (string, error) {
	var xdg string
	if runtime.GOOS == "windows" {
		xdg = os.Getenv("LOCALAPPDATA")
	} else {
		xdg = os.Getenv("XDG_DATA_HOME")
	}
	if xdg == "" {
		xdg = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	dataDir := filepath.Join(xdg, "deepdelve")
	_, err := os.Stat(dataDir)
	if err != nil {
		err = os.MkdirAll(dataDir, 0755)
		if err != nil {
			return "", fmt.Errorf("building data directory: %v", err)
		}
	}
	return dataDir, nil
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	dataDir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dataDir, "config.yaml")
}

// SaveFile atomically writes data to the given file in the data directory,
// and returns its path.
func SaveFile(filename string, data []byte) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dataDir, "temp-"+filename)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	path := filepath.Join(dataDir, filename)
	if err := os.Rename(f.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDump writes a plain level dump to the data directory and returns a
// success message.
func WriteDump(ld *levelDump) (string, error) {
	path, err := SaveFile(fmt.Sprintf("dump-%d-%d.txt", ld.depth, ld.seed), []byte(ld.String()))
	if err != nil {
		return "", fmt.Errorf("writing level dump: %v", err)
	}
	return fmt.Sprintf("Level dump written to %s.", path), nil
}
