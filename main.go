package main

import "github.com/TitogeremitoDev/mealplan-cli/cmd/mealplan"

func main() {
	mealplan.Execute()
}
