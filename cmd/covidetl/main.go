package main

import "github.com/Jquirozp0/etl-covid-pipeline/internal/cli"

func main() {
	cli.Execute()
}
