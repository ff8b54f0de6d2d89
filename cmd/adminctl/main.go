package main

import "wallet_admin/internal/cli"

func main() {
	cli.Execute()
}
