// Package cli wires the epctop commands together.
//
// The root command runs the dashboard; subcommands cover the small
// amount of housekeeping around it:
//
//	epctop              - Run the live EPC dashboard
//	epctop init         - Write a starter config file
//	epctop version      - Print version information
//	epctop completion   - Generate shell completion scripts
package cli
