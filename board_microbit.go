//go:build microbit_v2

package main

const boardName = "microbit_v2"
