//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

const testLaunchers = `launchers:
  - name: Apps
    type: app_launcher
    priority: 1
    home: true
    shortcut: true
    args:
      apps:
        Files: {exec: nautilus --new-window, search_string: files folder}
        Firefox: {exec: firefox %u, search_string: firefox browser}
  - name: Calculator
    type: calculation
    priority: 2
  - name: Google
    alias: g
    type: web_launcher
    priority: 3
    async: true
    args: {engine: google}
  - name: Notes
    alias: n
    type: bulk_text
    priority: 0
    async: true
    args: {exec: echo, args: ["note about {keyword}"]}
`

const testConfig = `[behavior]
animate = false
`

// CreateTestWorkspace writes config.toml and launchers.yaml into a temp dir
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir := tf.t.TempDir()
	tf.workspace = dir
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(testConfig), 0644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "launchers.yaml"), []byte(testLaunchers), 0644); err != nil {
		return "", err
	}
	return dir, nil
}

// AppendLauncher adds raw YAML to the end of launchers.yaml
func (tf *TUITestFramework) AppendLauncher(entry string) error {
	f, err := os.OpenFile(filepath.Join(tf.workspace, "launchers.yaml"), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(entry)
	return err
}
