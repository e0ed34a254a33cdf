package main

import "github.com/aPeter1/musrfit-fork-sub004/internal/cli"

func main() {
	cli.Execute()
}
