package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps-ports.toml")
	content := "debug = true\ndocker_bin = \"podman\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewConfig()
	if err := c.ReadFile(path); err != nil {
		t.Fatal(err)
	}
	if !c.Debug {
		t.Error("debug not read")
	}
	if c.DockerBin != "podman" {
		t.Errorf("docker_bin = %q, want podman", c.DockerBin)
	}
}

func TestReadFileMissing(t *testing.T) {
	c := NewConfig()
	err := c.ReadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
	// Defaults survive a failed load.
	if c.DockerBin != "docker" {
		t.Errorf("docker_bin = %q, want docker", c.DockerBin)
	}
}

func TestDockerBinDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps-ports.toml")
	if err := os.WriteFile(path, []byte("debug = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewConfig()
	if err := c.ReadFile(path); err != nil {
		t.Fatal(err)
	}
	if c.DockerBin != "docker" {
		t.Errorf("docker_bin = %q, want the docker default", c.DockerBin)
	}
}
