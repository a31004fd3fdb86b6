package main

import "github.com/conanbridge/conanbridge/cmd/conanbridge/internal"

func main() {
	internal.Execute()
}
