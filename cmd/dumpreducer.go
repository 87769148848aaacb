package main

import (
	"os"

	"go-dumpreducer/reducer"
)

func main() {
	os.Exit(reducer.CommandReduce(os.Args[1:]))
}
