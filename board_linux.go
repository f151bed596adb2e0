//go:build linux && !microbit_v2

package main

const boardName = "linux"
