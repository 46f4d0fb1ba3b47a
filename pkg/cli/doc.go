// Package cli implements the mocksauce command line.
//
// Commands:
//
//	serve     serve fixture routes from a project file
//	apply     run one document through the pipeline and print the result
//	validate  check a project file and its fixtures
//	version   print build information
package cli
