package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suparena/recordconv"
	"github.com/suparena/recordconv/config"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configPath  = flag.String("config", "recordconv.yaml", "Path to the configuration document")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := recordconv.GetVersionInfo()
		fmt.Printf("recordconv version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	entities := 0
	for nsName, ns := range cfg.Namespaces {
		for entity, set := range ns.Sets {
			fmt.Printf("%s -> %s/%s\n", entity, nsName, set)
			entities++
		}
	}
	fmt.Printf("%d entity binding(s), default expiration %s\n", entities, cfg.DefaultExpiration.Value())
	if cfg.DynamoDB != nil {
		fmt.Printf("dynamodb table %s (%s)\n", cfg.DynamoDB.Table, cfg.DynamoDB.Region)
	}
}
