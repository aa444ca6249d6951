package model

// Package model defines domain data structures used across the app: song
// records returned by Song File Hub, the status line shown in the main
// window, and download tasks. Structures are plain values suitable for
// direct binding in the UI.
