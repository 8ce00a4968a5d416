package main

import (
	"boscoin.io/votechain/cmd/votechain/cmd"
)

func main() {
	cmd.Execute()
}
