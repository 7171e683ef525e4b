// cmd/api/main.go
package main

import "offer-ledger/internal/cli"

func main() {
	cli.Execute()
}
