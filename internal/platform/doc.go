package platform

// Package platform contains OS integration glue: default song directory
// discovery, song file naming, history database location, and opening a
// directory in the system file manager.
