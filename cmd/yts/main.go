package main

import (
	"yourtranscript/cmd/yts/cmd"
)

func main() {
	cmd.Execute()
}
