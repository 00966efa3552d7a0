//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract reads README.md and writes the A0 table to data/outputs/a0.csv.
func Extract() error {
	mg.SerialDeps(Init, Build)
	return sh.RunV(binPath, "extract")
}

// JSONLD wraps the A0 table as data/outputs/a0.jsonld.
func JSONLD() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "jsonld")
}

// RDF serializes the JSON-LD document as data/outputs/a0.ttl.
func RDF() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "rdf")
}

// Flow exports the JSON-LD graph as a flow diagram.
func Flow() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "flow", "export")
}
