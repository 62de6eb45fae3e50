package main

import "github.com/yunisnasibov/e-ticaret-12/cmd"

func main() {
	cmd.Execute()
}
