package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cenkalti/log"
	"github.com/urfave/cli"

	"github.com/eyalev/apps-ports/config"
	"github.com/eyalev/apps-ports/docker"
	"github.com/eyalev/apps-ports/killer"
	"github.com/eyalev/apps-ports/probe"
	"github.com/eyalev/apps-ports/runner"
	"github.com/eyalev/apps-ports/types"
)

func init() {
	log.DefaultHandler.SetLevel(log.DEBUG)
}

func main() {
	app := cli.NewApp()
	app.Name = "apps-ports"
	app.Usage = "find and stop applications using specific ports"
	app.Version = "1.0"
	var cfg = config.NewConfig()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "port, p",
			Usage: "specific port to check",
		},
		cli.BoolFlag{
			Name:  "list, l",
			Usage: "list all processes using ports",
		},
		cli.StringFlag{
			Name:  "kill, k",
			Usage: "kill process using the specified port",
		},
		cli.BoolFlag{
			Name:  "kill-docker-container",
			Usage: "when used with --kill, stop the Docker container instead of just the process",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: config.DefaultPath,
			Usage: "configuration file path",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug log",
		},
	}
	app.Before = func(c *cli.Context) error {
		err := cfg.ReadFile(c.GlobalString("config"))
		if err != nil {
			if os.IsNotExist(err) {
				log.Debugf("No config file: %s\n", err)
			} else {
				log.Errorf("Cannot read config: %s\n", err)
			}
		}
		if c.IsSet("debug") {
			cfg.Debug = true
		}
		if cfg.Debug {
			log.SetLevel(log.DEBUG)
		} else {
			log.SetLevel(log.INFO)
		}

		return nil
	}
	app.Action = func(c *cli.Context) error {
		correlator := docker.NewCorrelator(runner.Run, cfg.DockerBin)
		engine := probe.NewEngine(runner.Run, correlator.Correlate)

		if port := c.String("kill"); port != "" {
			killByPort(engine, correlator, cfg, port, c.Bool("kill-docker-container"))
			return nil
		}
		if port := c.String("port"); port != "" {
			showPort(engine, port)
			return nil
		}
		listAll(engine)
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Errorf("Error occured: %s\n", err.Error())
	}
}

func listAll(engine *probe.Engine) {
	records := engine.DiscoverAll()
	if len(records) == 0 {
		fmt.Println("No processes found using ports.")
		return
	}
	printTable(records)
}

func showPort(engine *probe.Engine, port string) {
	records := engine.DiscoverPort(port)
	if len(records) == 0 {
		fmt.Printf("No process found using port %s\n", port)
		return
	}
	printTable(records)
}

func killByPort(engine *probe.Engine, correlator *docker.Correlator, cfg *config.Config, port string, stopContainer bool) {
	records := engine.DiscoverPort(port)
	if len(records) == 0 {
		fmt.Printf("No process found using port %s\n", port)
		return
	}
	fmt.Printf("Found process(es) using port %s:\n", port)
	printTable(records)

	k := killer.NewKiller(correlator, cfg.DockerBin)
	k.KillByPort(records, port, stopContainer)
}

func printTable(records []types.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "port\tpid\tprocess_name\tcommand\tdocker_id\tdocker_image")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Port, r.Pid, r.ProcessName, r.Command, r.DockerContainerID, r.DockerImage)
	}
	w.Flush()
}
