// Package rules contains the built-in lint rules. Importing the package
// (typically with a blank import) registers every rule with the global
// registry via init functions.
package rules
