package main

import "github.com/manusa/kubernetes-mcp-server-launcher/cmd/kubernetes-mcp-server-cache/cmd"

func main() {
	cmd.Execute()
}
