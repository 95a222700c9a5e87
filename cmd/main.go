package main

import "github.com/adanyl0v/taskflow/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenDatabase()
	defer app.CloseDatabase()

	app.MustInitStorage()
	app.InitMailer()

	app.MustListenAndServeHTTP()
}
