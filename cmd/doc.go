// Package cmd implements the command-line interface of scanmaster. It provides
// a hierarchical command structure with operations for running the server and
// interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Starts and configures the server
//   - graph: Lists, inspects and updates the parameters of stored graphs
//   - device: Reads and writes device key-values
//   - overlay: Prints the latest overlay frame
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an environment variable SCANMASTER_<FLAG>,
// for example SCANMASTER_TRANSPORT_ENDPOINTS=localhost:9000. Variables are read
// from .env and .env.local as well.
//
// See scanmaster -help for a list of all commands.
package cmd
