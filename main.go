package main

import "github.com/IEcheandia/scanmaster-sub023/cmd"

func main() {
	cmd.Execute()
}
