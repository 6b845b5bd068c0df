package main

import "studyplan/cmd/sp/root"

func main() {
	root.Execute()
}
