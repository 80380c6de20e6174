package main

import "testing"

func TestParseArgsPositional(t *testing.T) {
	o, err := parseArgs([]string{"archive.psarc", "out"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if o.psarcPath != "archive.psarc" || o.outputDir != "out" {
		t.Errorf("parseArgs() = %+v", o)
	}
}

func TestParseArgsFlags(t *testing.T) {
	o, err := parseArgs([]string{"-q", "--convert-sng", "archive.psarc"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !o.quiet || !o.convertSng || o.psarcPath != "archive.psarc" {
		t.Errorf("parseArgs() = %+v", o)
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	if _, err := parseArgs([]string{"--bogus"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParseArgsTooManyPositional(t *testing.T) {
	if _, err := parseArgs([]string{"a", "b", "c"}); err == nil {
		t.Fatal("expected error for too many positional arguments")
	}
}

func TestParseArgsHelpAndVersion(t *testing.T) {
	o, err := parseArgs([]string{"-h"})
	if err != nil || !o.showHelp {
		t.Fatalf("parseArgs(-h) = %+v, %v", o, err)
	}
	o, err = parseArgs([]string{"--version"})
	if err != nil || !o.showVersion {
		t.Fatalf("parseArgs(--version) = %+v, %v", o, err)
	}
}
