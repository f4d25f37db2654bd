package main

import "github.com/noah-isme/mergington-activities-api/cmd/activityctl/cmd"

func main() {
	cmd.Execute()
}
