package main

import (
	"os"

	btccw "github.com/btccw/btc-cw-node/src"
)

func main() {
	os.Exit(btccw.NodeMain())
}
