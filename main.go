package main

import "github.com/opsre/cloudinv/cmd"

func main() {
	cmd.Execute()
}
