// Package tables registers the aggregation tables with the core registry.
// Import this package to make every table available for lookup and export.
package tables

// Each page file uses init() to register its tables.
