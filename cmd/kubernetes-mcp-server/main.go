package main

import "github.com/manusa/kubernetes-mcp-server-launcher/cmd/kubernetes-mcp-server/cmd"

func main() {
	cmd.Execute()
}
