package config

import "github.com/BurntSushi/toml"

// DefaultPath is where the config file is looked up unless overridden.
const DefaultPath = "/etc/apps-ports.toml"

type Config struct {
	Debug     bool   `toml:"debug"`
	DockerBin string `toml:"docker_bin"`
}

func NewConfig() *Config {
	c := new(Config)
	c.DockerBin = "docker"
	return c
}

// ReadFile parses a TOML file into the Config.
func (c *Config) ReadFile(name string) error {
	_, err := toml.DecodeFile(name, c)
	if err != nil {
		return err
	}
	if c.DockerBin == "" {
		c.DockerBin = "docker"
	}
	return nil
}
