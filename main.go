package main

import (
	"os"

	"BucketBackup/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
