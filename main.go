package main

// Version is set at build time via -ldflags="-X main.Version=x.y.z"
var Version = "dev"

func main() {
	Execute()
}
