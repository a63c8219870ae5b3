// Package main hosts the autosub CLI entrypoint and command graph.
//
// The root command takes one or more videos, resolves configuration from the
// optional TOML file and flags, sets up logging for the run, checks that the
// required tools are installed, and hands the batch to the pipeline. The
// check and config subcommands expose the preflight report and sample config
// scaffolding.
package main
