package main

import "lifeadmin/cmd/la/root"

func main() {
	root.Execute()
}
